package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Context lifecycle (debug)
		"Opened %s as %s: %dx%d, %d video / %d audio streams": "%s を %s として開きました: %dx%d, 映像 %d / 音声 %d ストリーム",
		"Context %s released":                                  "コンテキスト %s を解放しました",
		"Context %s collected":                                 "コンテキスト %s がガベージコレクションで回収されました",
		"No video frame for %s at %s":                          "%s の %s に映像フレームがありません",
		"Seek %s to %s (exact: %t): %t":                        "%s を %s へシーク (正確: %t): %t",

		// Extract stage
		"Extracted frame %d at %s":           "フレーム %d (%s) を抽出しました",
		"Extracted %d of %d decoded frames":  "デコードした %[2]d フレームのうち %[1]d フレームを抽出しました",
		"No frame found at %s":               "%s にフレームが見つかりません",
		"Exported %d frames to %s":           "%d フレームを %s に書き出しました",

		// Contact stage
		"Contact sheet %dx%d, %d thumbnails of %dx%d": "コンタクトシート %dx%d, サムネイル %d 枚 (%dx%d)",
		"Contact sheet with %d of %d thumbnails":      "コンタクトシート: %[2]d 枚中 %[1]d 枚のサムネイル",
		"No frame at %s":                              "%s にフレームがありません",

		// Renderer
		"Failed to load font %s, using the built-in face: %v": "フォント %s を読み込めないため内蔵フォントを使用します: %v",

		// Audio export
		"Wrote %d sample frames at %d Hz to %s": "%[2]d Hz で %[1]d サンプルフレームを %[3]s に書き込みました",

		// Output
		"Output saved to %s": "出力を %s に保存しました",

		// Warnings
		"Failed to close engine for %s: %v":     "%s のエンジンを閉じられませんでした: %v",
		"Engine for %s closed with error: %v":   "%s のエンジンがエラーで終了しました: %v",
	})
}
