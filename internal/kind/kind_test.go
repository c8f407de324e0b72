package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	k, err := Parse(" UUIDv4 ")
	require.NoError(t, err)
	assert.Equal(t, UUIDv4, k)

	_, err = Parse("uuidv9")
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestClasses(t *testing.T) {
	tests := map[Kind]Class{
		NilUUID:   ClassConstant,
		MaxUUID:   ClassConstant,
		UUIDv3:    ClassName,
		UUIDv5:    ClassName,
		UUIDv4:    ClassRandom,
		UUIDv7:    ClassTime,
		UPID:      ClassPrefix,
		Kind("x"): ClassUnknown,
	}
	for k, want := range tests {
		assert.Equal(t, want, k.Class(), k)
	}
}

func TestInfos(t *testing.T) {
	infos := Infos()
	require.Len(t, infos, len(table))
	assert.Equal(t, UUIDv1, infos[0].Kind)
	assert.Equal(t, "Nil UUID", NilUUID.DisplayName())
	for _, info := range infos {
		assert.NotEqual(t, "unknown", info.Class, info.Kind)
	}
}
