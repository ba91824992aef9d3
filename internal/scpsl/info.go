package scpsl

import (
	"encoding/base64"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Placeholders for server names that cannot be recovered.
const (
	unknownName    = "未知服务器"
	nameParseError = "名称解析失败"
)

// tagPattern matches HTML tags and BBCode tags in one alternation.
// The bracket branch accepts a parameter tail so [color=red] is
// stripped the same as [b] or [/color]. This is a text transform,
// not a markup parser.
var tagPattern = regexp.MustCompile(`(?i)<[^>]+>|\[/?[a-z]+[^\]]*\]`)

// DecodeInfo turns the base64-encoded, markup-laden Info field into a
// clean display name. It never fails: undecodable input yields a fixed
// placeholder and a warning in the log.
func DecodeInfo(infoB64 string) string {
	if infoB64 == "" {
		return unknownName
	}

	decoded, err := base64.StdEncoding.DecodeString(infoB64)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to decode server name")
		return nameParseError
	}

	// Invalid byte sequences are dropped, not fatal.
	text := strings.ToValidUTF8(string(decoded), "")
	clean := tagPattern.ReplaceAllString(text, "")

	// Collapse whitespace runs (including newlines) to single spaces.
	return strings.Join(strings.Fields(clean), " ")
}
