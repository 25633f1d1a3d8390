package review

import (
	"fmt"
	"strings"

	"github.com/dshills/redline/internal/document"
	"github.com/dshills/redline/internal/pathfilter"
)

// reviewInstructions ask the model to flag writing problems and to identify
// each one by quoting a text fragment instead of a line number. Positions
// reported by models are unreliable; quoted fragments are resolved locally
// by the locate package.
var reviewInstructions = []string{
	"上記の文章をレビューし、誤字脱字・悪文・表現ミス・不自然な日本語・読みづらさ・論理の飛躍・冗長表現などを診断してください。",
	"重要度は次の4つのいずれかから選択してください: [ERROR], [WARNING], [INFO], [HINT]",
	"- [ERROR]: 誤字脱字や意味不明な文、重大な論理破綻",
	"- [WARNING]: 不自然な表現、論理の飛躍、文法ミス",
	"- [INFO]: 改善提案やより良い表現",
	"- [HINT]: 細かな表現やスタイル、語尾、助詞の使い方など",
	"指摘は直接的で簡潔な日本語で、文章の改善点を具体的に示してください",
	"同じ問題の繰り返しは避け、各問題は一度だけ報告してください",
	"markdown形式の引用ブロック中は原文の表現に従ってください",
	"URLに:embedが含まれているのは、URLを埋め込むためであるため指摘不要",
}

const positionInstructions = "重要：位置情報（行番号や列番号）を指定しないでください。代わりに、問題のある箇所を特定できる文章断片（フレーズや文）を提供してください。\n文章断片には最小限の必要なコンテキスト（特徴的な語句や前後の文脈）を含めてください。"

// BuildPrompt assembles the user prompt for one document review. Custom
// instructions, if any, are appended verbatim after the fixed instructions.
func BuildPrompt(doc *document.Document, custom string) string {
	var b strings.Builder

	b.WriteString("```\n")
	b.WriteString(doc.Text())
	b.WriteString("\n```\n")
	for _, line := range reviewInstructions {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "ファイルパス: %s\n", doc.ID())
	lang, ok := pathfilter.Language(doc.ID())
	if !ok {
		lang = "plaintext"
	}
	fmt.Fprintf(&b, "言語: %s\n", lang)
	fmt.Fprintf(&b, "文章の長さ: %d行\n", doc.LineCount())
	b.WriteString("\n")
	b.WriteString(positionInstructions)

	if custom = strings.TrimSpace(custom); custom != "" {
		b.WriteString("\n")
		b.WriteString(custom)
	}

	return b.String()
}
