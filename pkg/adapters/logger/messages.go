package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Batch (info)
		"Annotating videos in %s":           "%s の動画にアノテーションを付けます",
		"Found %d videos in %s":             "%[2]s に %[1]d 本の動画が見つかりました",
		"Opened %s (%d frames)":             "%s を開きました (%d フレーム)",
		"Opened %s (%d frames, %d annotated)": "%s を開きました (%d フレーム, %d 件のアノテーション)",
		"Saved %d annotations to %s":        "%[2]s に %[1]d 件のアノテーションを保存しました",
		"Quit without saving %s":            "%s を保存せずに終了しました",
		"Reached the end of the video list": "動画リストの最後に到達しました",
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",

		// Session and decoding (debug)
		"Loaded %s: %d frames, %d annotations":             "%s を読み込みました: %d フレーム, %d 件のアノテーション",
		"Decoding %s as raw %dx%d %s stream":               "%s を %dx%d の raw ストリーム (%s) としてデコード中",
		"Probe failed for %s, decoding as PNG stream: %v":  "%s の解析に失敗したため PNG ストリームとしてデコードします: %v",
		"Window opened with %s":                            "%s でウィンドウを開きました",

		// Warnings
		"No videos found in %s":            "%s に動画が見つかりません",
		"Skipping %s: %v":                  "%s をスキップします: %v",
		"Failed to release lock: %v":       "ロックの解放に失敗しました: %v",
		"Input queue full, dropping event": "入力キューが一杯のためイベントを破棄しました",

		"Videos named %s differ only by extension, records keep the extension": "%s という名前の動画が拡張子違いで複数あるため、レコード名に拡張子を含めます",

		// Errors
		"Skipping %s: malformed record %s: %v": "%s をスキップします: 不正なレコード %s: %v",
		"Failed to save %s: %v":                "%s の保存に失敗しました: %v",
	})
}
