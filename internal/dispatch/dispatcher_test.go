package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/uidgen/internal/generator"
	"github.com/weiawesome/uidgen/internal/kind"
)

// counter is a deterministic Source that yields "<prefix>-0", "<prefix>-1", ...
type counter struct {
	prefix string
	n      int
	failAt int
}

func (c *counter) Next() (string, error) {
	if c.failAt > 0 && c.n == c.failAt {
		return "", errors.New("clock exhausted")
	}
	id := fmt.Sprintf("%s-%d", c.prefix, c.n)
	c.n++
	return id, nil
}

type prefixEcho struct{ n int }

func (p *prefixEcho) NextWithPrefix(prefix string) (string, error) {
	p.n++
	return fmt.Sprintf("%s_%d", prefix, p.n), nil
}

func fakeRegistry(t *testing.T) *generator.Registry {
	t.Helper()

	v3, err := generator.NewUUIDNameGenerator(3)
	require.NoError(t, err)
	v5, err := generator.NewUUIDNameGenerator(5)
	require.NoError(t, err)

	r := generator.NewRegistry()
	r.Sources[kind.NilUUID] = generator.NewConstantGenerator(kind.NilLiteral)
	r.Sources[kind.MaxUUID] = generator.NewConstantGenerator(kind.MaxLiteral)
	r.Sources[kind.ULID] = &counter{prefix: "ulid"}
	r.Sources[kind.NanoID] = &counter{prefix: "nano"}
	r.Sources[kind.Snowflake] = &counter{prefix: "sf", failAt: 2}
	r.Named[kind.UUIDv3] = v3
	r.Named[kind.UUIDv5] = v5
	r.Prefixed[kind.UPID] = &prefixEcho{}
	r.Namespaces = generator.SourceFunc(func() (string, error) {
		return uuid.NewString(), nil
	})
	return r
}

func TestGenerateCounts(t *testing.T) {
	d := New(fakeRegistry(t))
	ctx := context.Background()

	for _, k := range []kind.Kind{kind.NilUUID, kind.MaxUUID, kind.ULID, kind.NanoID, kind.UPID} {
		for _, n := range []int{0, 1, 7} {
			t.Run(fmt.Sprintf("%s/%d", k, n), func(t *testing.T) {
				res, err := d.Generate(ctx, Request{Kind: k, Count: n, Prefix: "user"})
				require.NoError(t, err)
				assert.NotNil(t, res.IDs)
				assert.Len(t, res.IDs, n)
				assert.Equal(t, k, res.Kind)
			})
		}
	}
}

func TestGenerateConstant(t *testing.T) {
	d := New(fakeRegistry(t))

	res, err := d.Generate(context.Background(), Request{Kind: kind.NilUUID, Count: 5})
	require.NoError(t, err)
	require.Len(t, res.IDs, 5)
	for _, id := range res.IDs {
		assert.Equal(t, "00000000-0000-0000-0000-000000000000", id)
	}

	res, err = d.Generate(context.Background(), Request{Kind: kind.MaxUUID, Count: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{kind.MaxLiteral, kind.MaxLiteral}, res.IDs)
}

func TestGenerateSequential(t *testing.T) {
	d := New(fakeRegistry(t))

	res, err := d.Generate(context.Background(), Request{Kind: kind.ULID, Count: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"ulid-0", "ulid-1", "ulid-2"}, res.IDs)
}

func TestGeneratePrefixPassthrough(t *testing.T) {
	d := New(fakeRegistry(t))

	res, err := d.Generate(context.Background(), Request{Kind: kind.UPID, Count: 2, Prefix: "!!"})
	require.NoError(t, err)
	assert.Equal(t, []string{"!!_1", "!!_2"}, res.IDs)

	res, err = d.Generate(context.Background(), Request{Kind: kind.UPID, Count: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"_3"}, res.IDs)
}

func TestGenerateNamed(t *testing.T) {
	d := New(fakeRegistry(t))
	ctx := context.Background()

	t.Run("valid namespace is deterministic", func(t *testing.T) {
		res, err := d.Generate(ctx, Request{
			Kind:      kind.UUIDv5,
			Namespace: uuid.NameSpaceDNS.String(),
			Name:      "example",
			Count:     3,
		})
		require.NoError(t, err)
		require.Len(t, res.IDs, 3)
		assert.False(t, res.NamespaceSubstituted)
		want := uuid.NewSHA1(uuid.NameSpaceDNS, []byte("example")).String()
		for _, id := range res.IDs {
			assert.Equal(t, want, id)
		}
	})

	t.Run("namespace label", func(t *testing.T) {
		res, err := d.Generate(ctx, Request{Kind: kind.UUIDv3, Namespace: "dns", Name: "python.org", Count: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"6fa459ea-ee8a-3ca4-894e-db77e160355e"}, res.IDs)
	})

	t.Run("empty namespace", func(t *testing.T) {
		res, err := d.Generate(ctx, Request{Kind: kind.UUIDv3, Name: "example", Count: 3})
		require.NoError(t, err)
		assert.Empty(t, res.IDs)
		assert.NotNil(t, res.IDs)
	})

	t.Run("empty name", func(t *testing.T) {
		for _, ns := range []string{"", "dns", "garbage"} {
			res, err := d.Generate(ctx, Request{Kind: kind.UUIDv5, Namespace: ns, Count: 4})
			require.NoError(t, err)
			assert.Empty(t, res.IDs)
		}
	})

	t.Run("invalid namespace degrades", func(t *testing.T) {
		res, err := d.Generate(ctx, Request{Kind: kind.UUIDv5, Namespace: "garbage", Name: "example", Count: 4})
		require.NoError(t, err)
		require.Len(t, res.IDs, 4)
		assert.True(t, res.NamespaceSubstituted)
		seen := map[string]struct{}{}
		for _, id := range res.IDs {
			parsed, err := uuid.Parse(id)
			require.NoError(t, err)
			assert.Equal(t, uuid.Version(5), parsed.Version())
			seen[id] = struct{}{}
		}
		assert.Len(t, seen, 4)
	})
}

func TestGenerateStrictNamespace(t *testing.T) {
	d := New(fakeRegistry(t), WithStrictNamespace(true))

	_, err := d.Generate(context.Background(), Request{Kind: kind.UUIDv3, Namespace: "garbage", Name: "x", Count: 1})
	assert.ErrorIs(t, err, ErrInvalidNamespace)

	res, err := d.Generate(context.Background(), Request{Kind: kind.UUIDv3, Namespace: "url", Name: "x", Count: 1})
	require.NoError(t, err)
	assert.Len(t, res.IDs, 1)
}

func TestGenerateErrors(t *testing.T) {
	d := New(fakeRegistry(t), WithMaxCount(10))
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"negative count", Request{Kind: kind.ULID, Count: -1}, ErrInvalidCount},
		{"too large", Request{Kind: kind.ULID, Count: 11}, ErrCountTooLarge},
		{"unknown kind", Request{Kind: kind.Kind("guid"), Count: 1}, ErrUnknownKind},
		{"unbound kind", Request{Kind: kind.KSUID, Count: 1}, ErrUnknownKind},
		{"library failure", Request{Kind: kind.Snowflake, Count: 5}, ErrGenerate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := d.Generate(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}

	assert.Equal(t, 10, d.MaxCount())
	assert.Equal(t, DefaultMaxCount, New(fakeRegistry(t), WithMaxCount(0)).MaxCount())
}

func TestGenerateRealRegistry(t *testing.T) {
	reg, err := generator.Build(generator.DefaultConfig())
	require.NoError(t, err)
	d := New(reg)

	for _, k := range kind.All() {
		t.Run(k.String(), func(t *testing.T) {
			res, err := d.Generate(context.Background(), Request{
				Kind:      k,
				Namespace: "dns",
				Name:      "example.com",
				Prefix:    "user",
				Count:     10,
			})
			require.NoError(t, err)
			assert.Len(t, res.IDs, 10)
		})
	}

	res, err := d.Generate(context.Background(), Request{Kind: kind.UUIDv4, Count: 10})
	require.NoError(t, err)
	seen := map[string]struct{}{}
	for _, id := range res.IDs {
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 10)
}
