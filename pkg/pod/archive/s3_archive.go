package archive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/loopholelabs/podcomm/pkg/pod/transcript"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const s3Suffix = ".bin"
const metaAddress = "Pod-Address"
const metaCreated = "Pod-Created"

// S3Archive stores one object per transcript under prefix.
type S3Archive struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewS3Archive connects to the endpoint and creates the bucket if needed.
func NewS3Archive(ctx context.Context, endpoint string, access string, secretAccess string, bucket string, prefix string, secure bool) (*S3Archive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secretAccess, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}

	return &S3Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *S3Archive) key(id uuid.UUID) string {
	return fmt.Sprintf("%s%s%s", s.prefix, id.String(), s3Suffix)
}

func (s *S3Archive) Put(ctx context.Context, t *transcript.Transcript) error {
	data := t.Bytes()
	_, err := s.client.PutObject(ctx, s.bucket, s.key(t.ID), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: "application/octet-stream",
			UserMetadata: map[string]string{
				metaAddress: strconv.FormatUint(uint64(t.Address), 10),
				metaCreated: t.Created.UTC().Format(time.RFC3339Nano),
			},
		})
	if err != nil {
		return fmt.Errorf("put transcript %s: %w", t.ID, err)
	}
	return nil
}

func (s *S3Archive) Get(ctx context.Context, id uuid.UUID) (*transcript.Transcript, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.key(id), minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat transcript %s: %w", id, err)
	}

	address, err := strconv.ParseUint(metaValue(info.UserMetadata, metaAddress), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("transcript %s address: %w", id, err)
	}
	created, err := time.Parse(time.RFC3339Nano, metaValue(info.UserMetadata, metaCreated))
	if err != nil {
		return nil, fmt.Errorf("transcript %s created: %w", id, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, s.key(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get transcript %s: %w", id, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", id, err)
	}
	return transcript.FromBytes(id, uint32(address), created, data)
}

// List orders by object modification time, which is when Put ran.
func (s *S3Archive) List(ctx context.Context) ([]uuid.UUID, error) {
	type listed struct {
		id       uuid.UUID
		modified time.Time
	}
	found := make([]listed, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list transcripts: %w", obj.Err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, s.prefix), s3Suffix)
		id, err := uuid.Parse(name)
		if err != nil {
			// Not one of ours
			continue
		}
		found = append(found, listed{id: id, modified: obj.LastModified})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].modified.Before(found[j].modified)
	})

	ids := make([]uuid.UUID, len(found))
	for i, f := range found {
		ids[i] = f.id
	}
	return ids, nil
}

func (s *S3Archive) Close() error {
	return nil
}

// Servers differ in how they case user metadata keys.
func metaValue(meta map[string]string, key string) string {
	for k, v := range meta {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
