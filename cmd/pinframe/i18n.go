// Package main provides localization for the pinframe CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Input and Output": "入出力",
		"Annotation":       "アノテーション",
		"Tools":            "外部ツール",
		"Logging":          "ログ",

		// Root command
		"Annotate one point per frame in a directory of videos": "ディレクトリ内の動画にフレームごとに1点のアノテーションを付ける",

		// Input and output flags
		"Directory containing the videos to annotate":                        "アノテーション対象の動画を含むディレクトリ",
		"Record directory, relative to the input directory unless absolute": "レコードの保存先ディレクトリ（絶対パス以外は入力ディレクトリからの相対パス）",
		"Video file extension to include (repeatable)":                       "対象とする動画の拡張子（複数指定可）",
		"Output batch summary to file (Markdown format)":                     "バッチのサマリーをファイルに出力（Markdown形式）",

		// Annotation flags
		"Configuration file (YAML or TOML)":       "設定ファイル（YAML または TOML）",
		"Initial number of frames moved per step": "1回の移動で進むフレーム数の初期値",

		// Tool flags
		"Path to Chrome executable": "Chrome実行ファイルのパス",
		"Path to ffmpeg executable": "ffmpeg実行ファイルのパス",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Error messages
		"Input directory is required":           "入力ディレクトリが必要です",
		"Only one input directory can be given": "入力ディレクトリは1つだけ指定できます",

		// Summary output
		"Summary saved to %s":         "サマリーを %s に保存しました",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Annotation Summary": "アノテーションサマリー",
		"Batch":              "バッチ",
		"Item":               "項目",
		"Value":              "値",
		"Input Directory":    "入力ディレクトリ",
		"Record Directory":   "レコードディレクトリ",
		"Videos":             "動画",
		"Annotated Frames":   "アノテーション済みフレーム",
		"Finished By":        "終了理由",
		"End of list":        "リストの最後",
		"Quit":               "ユーザーによる終了",
		"Video":              "動画",
		"Status":             "状態",
		"Frames":             "フレーム数",
		"Annotated":          "アノテーション数",
		"Note":               "備考",
		"Saved":              "保存済み",
		"Skipped":            "スキップ",
		"Not saved":          "未保存",
		"Not visited":        "未訪問",
		"Generated by":       "生成:",
	})
}
