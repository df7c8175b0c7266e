package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Comment(t *testing.T) {
	t.Run("utf-8 keeps text", func(t *testing.T) {
		c := &Config{CommentEncoding: EncodingUTF8}
		assert.Equal(t, "道具 id", c.Comment("道具 id"))
	})

	t.Run("empty encoding keeps text", func(t *testing.T) {
		c := &Config{}
		assert.Equal(t, "item id", c.Comment("item id"))
	})

	t.Run("folds line breaks", func(t *testing.T) {
		c := &Config{}
		assert.Equal(t, "first line second line", c.Comment("first line\r\n\tsecond line\n"))
	})

	t.Run("gbk", func(t *testing.T) {
		c := &Config{CommentEncoding: EncodingGBK}
		assert.Equal(t, "\xd6\xd0\xce\xc4 id", c.Comment("中文 id"))
	})

	t.Run("gb18030", func(t *testing.T) {
		c := &Config{CommentEncoding: EncodingGB18030}
		assert.Equal(t, "\xd6\xd0\xce\xc4", c.Comment("中文"))
	})

	t.Run("trailing backslashes are removed", func(t *testing.T) {
		c := &Config{}
		assert.Equal(t, `path C:`, c.Comment(`path C:\`))
		assert.Equal(t, `a\b`, c.Comment("a\\b \\\\ \n"))
		assert.Empty(t, c.Comment(`\\`))
	})

	t.Run("gbk trailing backslash byte", func(t *testing.T) {
		c := &Config{CommentEncoding: EncodingGBK}
		// 乗 encodes as 0x81 0x5C.
		assert.Equal(t, "\xd6\xd0\xce\xc4", c.Comment("中文 乗"))
		assert.Equal(t, "\x81\\ id", c.Comment("乗 id"))
		assert.Equal(t, "x", c.Comment(`x \`))
	})

	t.Run("unsupported characters are replaced", func(t *testing.T) {
		c := &Config{CommentEncoding: EncodingGBK}
		out := c.Comment("bag \U0001F392")
		assert.Contains(t, out, "bag ")
		assert.NotContains(t, out, "\U0001F392")
	})

	t.Run("unknown encoding falls back to utf-8", func(t *testing.T) {
		c := &Config{CommentEncoding: "latin1"}
		assert.Equal(t, "中文", c.Comment("中文"))
	})
}

func TestCommentEncoder(t *testing.T) {
	enc, err := commentEncoder("")
	require.NoError(t, err)
	assert.Nil(t, enc)

	enc, err = commentEncoder("GBK")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = commentEncoder("shift_jis")
	assert.True(t, IsConfigError(err))
}
