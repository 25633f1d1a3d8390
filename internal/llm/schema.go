package llm

import "encoding/json"

// reviewToolSchema declares the reviewText function the backend is asked to
// call. The codeSnippet description matters: it instructs the model to quote
// a minimal identifiable fragment instead of reporting line numbers.
const reviewToolSchema = `{
  "type": "object",
  "properties": {
    "reviews": {
      "type": "array",
      "description": "レビュー結果の配列",
      "items": {
        "type": "object",
        "properties": {
          "severity": {
            "type": "string",
            "enum": ["ERROR", "WARNING", "INFO", "HINT"],
            "description": "問題の重要度（ERROR:誤字脱字や意味不明な文、WARNING:不自然な表現や論理の飛躍、INFO:改善提案、HINT:細かな表現やスタイル）"
          },
          "message": {
            "type": "string",
            "description": "問題の内容説明（日本語で簡潔に記述）"
          },
          "codeSnippet": {
            "type": "string",
            "description": "問題のある該当文やフレーズ。行番号は不要で、最小限の判別可能な文章断片を記載。"
          }
        },
        "required": ["severity", "message"]
      }
    }
  },
  "required": ["reviews"]
}`

func reviewTool() tool {
	return tool{
		Type: "function",
		Function: toolFunction{
			Name:        toolName,
			Description: "文章の誤字脱字・悪文・表現ミス・不自然な日本語・読みづらさ・論理の飛躍・冗長表現などをレビューし、問題点を指摘します",
			Parameters:  json.RawMessage(reviewToolSchema),
		},
	}
}
