package llm

import "fmt"

const tagPrompt = `次のニュース記事について、内容を表す短い日本語タグを最大3個生成してください。
出力は1行のみで「タグ1, タグ2, タグ3」の形式にしてください。
番号、記号、箇条書き、引用符、説明文は一切含めないでください。

タイトル: %s
概要: %s`

func buildTagPrompt(input TagInput) string {
	return fmt.Sprintf(tagPrompt, input.Title, input.Summary)
}
