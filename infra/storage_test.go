package infra

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorageClient(t *testing.T) *StorageClient {
	t.Helper()

	client, err := NewStorageClient(
		"http://localhost:9000",
		"us-east-1",
		"test-access",
		"test-secret",
		"fotos-formatura",
		"http://cdn.localhost:9000/",
		true,
	)
	require.NoError(t, err)
	return client
}

func TestPresignPutObject(t *testing.T) {
	client := testStorageClient(t)

	signed, err := client.PresignPutObject(context.Background(), "jii_a/jose_alvares/maria/1-foto-n1.jpg", "image/jpeg")
	require.NoError(t, err)

	parsed, err := url.Parse(signed)
	require.NoError(t, err)

	// Path-style: bucket then key.
	assert.True(t, strings.HasSuffix(parsed.Path, "/fotos-formatura/jii_a/jose_alvares/maria/1-foto-n1.jpg"),
		"unexpected path %q", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "900", query.Get("X-Amz-Expires"))
	assert.NotEmpty(t, query.Get("X-Amz-Signature"))
	assert.Contains(t, strings.ToLower(query.Get("X-Amz-SignedHeaders")), "content-type")
}

func TestPresignPutObjectDefaultsContentType(t *testing.T) {
	client := testStorageClient(t)

	signed, err := client.PresignPutObject(context.Background(), "jii_b/ana/bia/1-a.jpg", "")
	require.NoError(t, err)
	assert.Contains(t, signed, "jii_b/ana/bia/1-a.jpg")

	// The fallback content type is signed like an explicit one.
	parsed, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(parsed.Query().Get("X-Amz-SignedHeaders")), "content-type")
}

func TestPresignPutObjectBindsContentType(t *testing.T) {
	client := testStorageClient(t)
	ctx := context.Background()

	jpeg, err := client.PresignPutObject(ctx, "jii_a/ana/bia/3-c.jpg", "image/jpeg")
	require.NoError(t, err)
	png, err := client.PresignPutObject(ctx, "jii_a/ana/bia/3-c.jpg", "image/png")
	require.NoError(t, err)

	// Same key, different declared content type: the signatures must differ,
	// otherwise storage would accept a PUT with any content type.
	jpegURL, err := url.Parse(jpeg)
	require.NoError(t, err)
	pngURL, err := url.Parse(png)
	require.NoError(t, err)
	assert.NotEqual(t, jpegURL.Query().Get("X-Amz-Signature"), pngURL.Query().Get("X-Amz-Signature"))
}

func TestPresignPutObjectIsRepeatable(t *testing.T) {
	client := testStorageClient(t)
	ctx := context.Background()

	first, err := client.PresignPutObject(ctx, "jii_a/ana/bia/2-b.jpg", "image/png")
	require.NoError(t, err)
	second, err := client.PresignPutObject(ctx, "jii_a/ana/bia/2-b.jpg", "image/png")
	require.NoError(t, err)

	// Re-issuing is side-effect free; both URLs target the same object.
	assert.Contains(t, first, "jii_a/ana/bia/2-b.jpg")
	assert.Contains(t, second, "jii_a/ana/bia/2-b.jpg")
}

func TestPublicObjectURL(t *testing.T) {
	client := testStorageClient(t)

	// Trailing slash on the public endpoint is trimmed exactly once.
	assert.Equal(t,
		"http://cdn.localhost:9000/fotos-formatura/jii_a/jose_alvares/maria/1-foto-n1.jpg",
		client.PublicObjectURL("jii_a/jose_alvares/maria/1-foto-n1.jpg"),
	)
}
