package s3

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/reporter/pkg/report"
)

type putCall struct {
	bucket      string
	key         string
	contentType string
	body        string
}

type mockPutObject struct {
	mu    sync.Mutex
	calls []putCall
	putFn func(ctx context.Context, params *s3.PutObjectInput) error
}

func (m *mockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.calls = append(m.calls, putCall{
		bucket:      aws.ToString(params.Bucket),
		key:         aws.ToString(params.Key),
		contentType: aws.ToString(params.ContentType),
		body:        string(body),
	})
	m.mu.Unlock()
	if m.putFn != nil {
		return nil, m.putFn(ctx, params)
	}
	return &s3.PutObjectOutput{}, nil
}

func TestNewWriter_RequiresBucket(t *testing.T) {
	_, err := NewWriter(&mockPutObject{}, Config{})
	assert.ErrorIs(t, err, ErrBucketRequired)
}

func TestWriter_Keys(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"no prefix", "", "a.txt"},
		{"prefix", "runs/42", "runs/42/a.txt"},
		{"prefix with slashes", "/runs/42/", "runs/42/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWriter(&mockPutObject{}, Config{Bucket: "b", Prefix: tt.prefix})
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.Key("a.txt"))
		})
	}
}

func TestWriter_WritesLayout(t *testing.T) {
	client := &mockPutObject{}
	w, err := NewWriter(client, Config{Bucket: "reports", Prefix: "run-1"})
	require.NoError(t, err)
	ctx := context.Background()

	result := report.NewTestResult("should work")
	container := report.NewTestResultContainer("Suite A")

	require.NoError(t, w.WriteResult(ctx, result))
	require.NoError(t, w.WriteGroup(ctx, container))
	require.NoError(t, w.WriteAttachment(ctx, "x-attachment.png", []byte{0x89, 'P', 'N', 'G'}))
	require.NoError(t, w.WriteAttachment(ctx, "x-attachment.attach", []byte("?")))
	require.NoError(t, w.WriteEnvironmentInfo(ctx, map[string]string{"os": "linux"}))
	require.NoError(t, w.WriteCategoriesDefinitions(ctx, nil))

	require.Len(t, client.calls, 6)
	assert.Equal(t, "reports", client.calls[0].bucket)
	assert.Equal(t, "run-1/"+result.UUID+"-result.json", client.calls[0].key)
	assert.Equal(t, "application/json", client.calls[0].contentType)
	assert.Equal(t, "run-1/"+container.UUID+"-container.json", client.calls[1].key)
	assert.Equal(t, "image/png", client.calls[2].contentType)
	assert.Equal(t, "application/octet-stream", client.calls[3].contentType)
	assert.Equal(t, "run-1/environment.properties", client.calls[4].key)
	assert.Equal(t, "os = linux\n", client.calls[4].body)
	assert.Equal(t, "[]", client.calls[5].body)
}

func TestWriter_PropagatesErrors(t *testing.T) {
	boom := errors.New("access denied")
	client := &mockPutObject{putFn: func(context.Context, *s3.PutObjectInput) error { return boom }}
	w, err := NewWriter(client, Config{Bucket: "b"})
	require.NoError(t, err)

	err = w.WriteAttachment(context.Background(), "a.txt", nil)
	assert.ErrorIs(t, err, boom)
}

func TestWriter_RateLimitHonorsContext(t *testing.T) {
	client := &mockPutObject{}
	w, err := NewWriter(client, Config{Bucket: "b", RequestsPerSecond: 0.001, Burst: 1})
	require.NoError(t, err)

	require.NoError(t, w.WriteAttachment(context.Background(), "a.txt", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = w.WriteAttachment(ctx, "b.txt", nil)

	assert.Error(t, err)
	assert.Len(t, client.calls, 1)
}
