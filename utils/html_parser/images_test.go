package html_parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFirstImage(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"first image", `<p>x</p><img src="https://cdn.example.com/a.jpg"><img src="https://cdn.example.com/b.jpg">`, "https://cdn.example.com/a.jpg"},
		{"skips tracking pixel", `<img src="https://t.example.com/p.gif" width="1" height="1"><img src="https://cdn.example.com/real.png">`, "https://cdn.example.com/real.png"},
		{"skips data uri", `<img src="data:image/png;base64,AAAA"><img data-src="https://cdn.example.com/lazy.webp">`, "https://cdn.example.com/lazy.webp"},
		{"relative ignored", `<img src="/local.png">`, ""},
		{"no image", `<p>text only</p>`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFirstImage(tt.markup))
		})
	}
}

func TestLooksLikeImageURL(t *testing.T) {
	assert.True(t, LooksLikeImageURL("https://cdn.example.com/a.JPG?w=300"))
	assert.True(t, LooksLikeImageURL("https://cdn.example.com/a.webp"))
	assert.False(t, LooksLikeImageURL("https://cdn.example.com/podcast.mp3"))
	assert.False(t, LooksLikeImageURL("https://cdn.example.com/article"))
}
