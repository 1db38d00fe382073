package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	sc "github.com/dmitrijs2005/hammampos/internal/server/config"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Seams for the AWS SDK so presigning is testable without an object store.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// CatalogService serves the centrally-owned ticket type catalog and issues
// presigned URLs for type images stored in the object store.
type CatalogService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	config *sc.Config
}

func NewCatalogService(db *sql.DB, repos repomanager.RepositoryManager, config *sc.Config) *CatalogService {
	return &CatalogService{db: db, repos: repos, config: config}
}

func (s *CatalogService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// ImageURL returns a short-lived presigned GET URL for the stored image key.
func (s *CatalogService) ImageURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// List returns the catalog in display order. Items with a stored image get a
// presigned download URL; a presign failure leaves the URL empty rather than
// failing the fetch, so terminals can still refresh prices.
func (s *CatalogService) List(ctx context.Context) ([]api.CatalogItem, error) {
	types, err := s.repos.TicketTypes(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]api.CatalogItem, 0, len(types))
	for _, t := range types {
		item := api.CatalogItem{
			ID:        t.ID,
			Name:      t.Name,
			Price:     t.Price,
			Color:     t.Color,
			Icon:      t.Icon,
			SortOrder: t.SortOrder,
		}
		if t.ImageKey != "" {
			if url, err := s.ImageURL(ctx, t.ImageKey); err == nil {
				item.ImageURL = url
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Upsert creates or updates a catalog entry. Administrative action only; the
// terminals mirror the result read-only.
func (s *CatalogService) Upsert(ctx context.Context, t *models.TicketType) error {
	return s.repos.TicketTypes(s.db).Upsert(ctx, t)
}

// GetImageURLByType resolves the presigned image URL for one catalog entry.
func (s *CatalogService) GetImageURLByType(ctx context.Context, typeID string) (string, error) {
	t, err := s.repos.TicketTypes(s.db).GetByID(ctx, typeID)
	if err != nil {
		return "", err
	}
	if t.ImageKey == "" {
		return "", nil
	}
	return s.ImageURL(ctx, t.ImageKey)
}
