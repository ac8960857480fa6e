package redirect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainfolio/price-indexer/internal/adapter"
	"github.com/chainfolio/price-indexer/internal/domain"
	"github.com/chainfolio/price-indexer/internal/redirect"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := redirect.NewResolver([]domain.RedirectEntry{
		{
			SourceChain:   "10",
			SourceAddress: "0x4200000000000000000000000000000000000006",
			TargetChain:   "1",
			TargetAddress: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		},
	})

	chain, address := resolver.Resolve("10", "0x4200000000000000000000000000000000000006")
	assert.Equal(t, domain.ChainID("1"), chain)
	assert.Equal(t, "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2", address)
}

func TestResolver_Resolve_CaseInsensitiveSource(t *testing.T) {
	resolver := redirect.NewResolver([]domain.RedirectEntry{
		{
			SourceChain:   "1",
			SourceAddress: "0xABCDEF0123456789abcdef0123456789ABCDEF01",
			TargetChain:   "1",
			TargetAddress: "0x1111111111111111111111111111111111111111",
		},
	})

	chain, address := resolver.Resolve("1", "0xabcdef0123456789ABCDEF0123456789abcdef01")
	assert.Equal(t, domain.ChainID("1"), chain)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", address)
}

func TestResolver_Resolve_NoRedirect(t *testing.T) {
	resolver := redirect.NewResolver(nil)

	chain, address := resolver.Resolve("1", "0x2222222222222222222222222222222222222222")
	assert.Equal(t, domain.ChainID("1"), chain)
	assert.Equal(t, "0x2222222222222222222222222222222222222222", address)
}

func TestResolver_Resolve_SingleHop(t *testing.T) {
	// A points at B, B points at C; resolving A must stop at B
	resolver := redirect.NewResolver([]domain.RedirectEntry{
		{
			SourceChain:   "1",
			SourceAddress: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			TargetChain:   "1",
			TargetAddress: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		},
		{
			SourceChain:   "1",
			SourceAddress: "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			TargetChain:   "1",
			TargetAddress: "0xcccccccccccccccccccccccccccccccccccccccc",
		},
	})

	_, address := resolver.Resolve("1", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.Equal(t, "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", address)
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "redirects.json")
	content := `[
		{
			"sourceChain": "137",
			"sourceAddress": "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
			"targetChain": "137",
			"targetAddress": "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	resolver, err := redirect.LoadTable(adapter.NewFileSystem(), path)
	require.NoError(t, err)

	chain, address := resolver.Resolve("137", "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee")
	assert.Equal(t, domain.ChainID("137"), chain)
	assert.Equal(t, "0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270", address)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := redirect.LoadTable(adapter.NewFileSystem(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadTable_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "redirects.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := redirect.LoadTable(adapter.NewFileSystem(), path)
	assert.Error(t, err)
}
