package bootstrap

import (
	"context"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
)

func InitFirestore(ctx context.Context, log *slog.Logger, projectID string) (*firestore.Client, error) {
	if host := os.Getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
		log.Info("using firestore emulator", "host", host)
	}
	return firestore.NewClient(ctx, projectID)
}
