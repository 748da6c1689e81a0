package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntentExtractor_LongestMatchWins(t *testing.T) {
	extractor := NewIntentExtractor()

	// "đau lưng" and "đau" both match; the longer phrase must win.
	assert.Equal(t, "xương khớp", extractor.ExtractIntent("tôi bị đau lưng"))
	assert.Equal(t, "thần kinh não", extractor.ExtractIntent("Dạo này tôi hay nhức đầu"))
	assert.Equal(t, "tiêu hóa", extractor.ExtractIntent("đau dạ dày quá"))
}

func TestIntentExtractor_TableEntries(t *testing.T) {
	extractor := NewIntentExtractor()

	assert.Equal(t, "vitamin", extractor.ExtractIntent("Cho tôi hỏi về vitamin"))
	assert.Equal(t, "calcium canxi", extractor.ExtractIntent("thiếu canxi thì sao"))
	assert.Equal(t, "tim mạch", extractor.ExtractIntent("bệnh tim có nguy hiểm không"))
}

func TestIntentExtractor_HeuristicNeedsProductSignal(t *testing.T) {
	extractor := NewIntentExtractor()

	// No table phrase and no product-intent signal word: no intent.
	assert.Empty(t, extractor.ExtractIntent("hôm nay trời đẹp quá"))

	// Signal word present: longest remaining tokens become the term.
	term := extractor.ExtractIntent("gợi ý giùm loại nước súc miệng")
	assert.NotEmpty(t, term)
	assert.Contains(t, term, "miệng")
}

func TestIntentExtractor_EmptyMessage(t *testing.T) {
	extractor := NewIntentExtractor()
	assert.Empty(t, extractor.ExtractIntent(""))
	assert.Empty(t, extractor.ExtractIntent("   "))
}
