package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"automation-coach/internal/shared/storage/object"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "coaching/t.json", want: "coaching/t.json"},
		{name: "simple prefix", prefix: "root", key: "coaching/t.json", want: "root/coaching/t.json"},
		{name: "prefix trailing slash", prefix: "root/", key: "coaching/t.json", want: "root/coaching/t.json"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/coaching/t.json", want: "root/coaching/t.json"},
		{name: "nested prefix", prefix: "root/sub", key: "coaching/t.json", want: "root/sub/coaching/t.json"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestPutAndOpen(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := newWithClient(fake, "bucket", "/env/", "kms-1")
	ctx := context.Background()

	n, err := store.Put(ctx, object.CoachingKey("task-9"), "application/json", strings.NewReader(`{"a":1}`))
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7 bytes, got %d", n)
	}
	in := fake.puts[0]
	if aws.ToString(in.Key) != "env/coaching/task-9.json" {
		t.Fatalf("unexpected key %s", aws.ToString(in.Key))
	}
	if in.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(in.SSEKMSKeyId) != "kms-1" {
		t.Fatalf("expected kms encryption, got %v", in.ServerSideEncryption)
	}

	rc, err := store.Open(ctx, object.CoachingKey("task-9"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != `{"a":1}` {
		t.Fatalf("unexpected %s", data)
	}
}

func TestOpenMissingMapsToNotFound(t *testing.T) {
	store := newWithClient(&fakeS3{objects: map[string][]byte{}}, "bucket", "", "")
	if _, err := store.Open(context.Background(), "coaching/none.json"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDefaultEncryptionIsAES(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := newWithClient(fake, "bucket", "", "")
	if _, err := store.Put(context.Background(), "k.json", "application/json", strings.NewReader("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if fake.puts[0].ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256")
	}
}
