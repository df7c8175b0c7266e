package gen

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Supported comment encodings.
const (
	EncodingUTF8    = "utf-8"
	EncodingGBK     = "gbk"
	EncodingGB18030 = "gb18030"
)

// commentEncoder returns the encoder for the given encoding name. A nil
// encoder means the text is kept as UTF-8.
func commentEncoder(name string) (*encoding.Encoder, error) {
	switch strings.ToLower(name) {
	case "", EncodingUTF8, "utf8":
		return nil, nil
	case EncodingGBK:
		return encoding.ReplaceUnsupported(simplifiedchinese.GBK.NewEncoder()), nil
	case EncodingGB18030:
		return encoding.ReplaceUnsupported(simplifiedchinese.GB18030.NewEncoder()), nil
	default:
		return nil, NewConfigError("CommentEncoding", name, "unsupported encoding; use utf-8, gbk or gb18030")
	}
}

// Comment renders a description as single-line comment text in the
// configured encoding. Line breaks are folded into spaces and the text never
// ends in a backslash, which would splice the next line into a C++ line
// comment. A final character whose encoding ends in a backslash byte is
// dropped. The output is cosmetic: characters the encoding cannot represent
// are replaced, never reported.
func (c *Config) Comment(des string) string {
	des = strings.Join(strings.Fields(des), " ")
	enc, err := commentEncoder(c.CommentEncoding)
	if err != nil {
		enc = nil
	}
	for {
		des = strings.TrimRight(des, `\ `)
		out := des
		if enc != nil {
			if s, err := enc.String(des); err == nil {
				out = s
			}
		}
		if !strings.HasSuffix(out, `\`) {
			return out
		}
		_, size := utf8.DecodeLastRuneInString(des)
		des = des[:len(des)-size]
	}
}
