package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"

	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
)

// The categorical encoders travel with the trained model as a small JSON
// artifact: {"city": {"Bengaluru": 0, ...}, "season": {"Monsoon": 0, ...}}.
// The vocabularies are fixed at artifact build time and loaded once at
// startup; they are read-only afterwards.

// LoadEncodersFromFile reads the encoder artifact from local disk.
func LoadEncodersFromFile(path string) (pricing.Encoders, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pricing.Encoders{}, fmt.Errorf("read encoder artifact: %w", err)
	}
	return parseEncoders(data)
}

// FetchEncoders downloads the encoder artifact from object storage.
func FetchEncoders(ctx context.Context, client *minio.Client, bucket, object string) (pricing.Encoders, error) {
	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return pricing.Encoders{}, fmt.Errorf("fetch encoder artifact: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return pricing.Encoders{}, fmt.Errorf("read encoder artifact object: %w", err)
	}
	return parseEncoders(data)
}

func parseEncoders(data []byte) (pricing.Encoders, error) {
	var encoders pricing.Encoders
	if err := json.Unmarshal(data, &encoders); err != nil {
		return pricing.Encoders{}, fmt.Errorf("decode encoder artifact: %w", err)
	}
	if len(encoders.City) == 0 {
		return pricing.Encoders{}, fmt.Errorf("encoder artifact has an empty city vocabulary")
	}
	if len(encoders.Season) == 0 {
		return pricing.Encoders{}, fmt.Errorf("encoder artifact has an empty season vocabulary")
	}
	return encoders, nil
}
