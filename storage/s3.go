package storage

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"article-admin/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object ist ein Eintrag im Archiv-Bucket.
type Object struct {
	Key          string
	LastModified time.Time
}

// Archive legt Exporte und Snapshots in einem S3-kompatiblen Bucket ab.
type Archive struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Client erstellt einen S3-Client für den konfigurierten Archiv-Endpunkt.
func NewS3Client(cfg *config.Config) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.ArchiveS3URL,
				SigningRegion:     cfg.ArchiveS3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.ArchiveS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.ArchiveS3Key, cfg.ArchiveS3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// NewArchive erstellt das Archiv oder gibt nil zurück, wenn kein Bucket konfiguriert ist.
func NewArchive(cfg *config.Config) (*Archive, error) {
	if !cfg.ArchiveEnabled() {
		return nil, nil
	}
	client, err := NewS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return &Archive{client: client, bucket: cfg.ArchiveS3Bucket, baseURL: cfg.ArchiveS3URL}, nil
}

// UploadFile lädt eine Datei ins S3 hoch und gibt den Link zurück.
func (a *Archive) UploadFile(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := a.client.PutObject(ctx, input); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", a.baseURL, a.bucket, key), nil
}

// ListKeys listet alle Objekte unter prefix, neueste zuerst.
func (a *Archive) ListKeys(ctx context.Context, prefix string) ([]Object, error) {
	var out []Object
	p := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			o := Object{Key: aws.ToString(obj.Key)}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			out = append(out, o)
		}
	}
	SortNewestFirst(out)
	return out, nil
}

// DeleteKey löscht ein Objekt.
func (a *Archive) DeleteKey(ctx context.Context, key string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	return err
}

// SortNewestFirst sortiert nach LastModified absteigend.
func SortNewestFirst(objs []Object) {
	sort.Slice(objs, func(i, j int) bool {
		return objs[i].LastModified.After(objs[j].LastModified)
	})
}

// Expired gibt die Objekte zurück, die über die neuesten keep hinausgehen.
func Expired(objs []Object, keep int) []Object {
	if keep < 0 {
		keep = 0
	}
	if len(objs) <= keep {
		return nil
	}
	sorted := make([]Object, len(objs))
	copy(sorted, objs)
	SortNewestFirst(sorted)
	return sorted[keep:]
}
