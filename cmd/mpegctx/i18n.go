// Package main provides localization for the mpegctx CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Inspect and export MPEG-1 program streams": "MPEG-1 プログラムストリームの調査とエクスポート",
		"YAML configuration file":                   "YAML 設定ファイル",
		"Log level (debug, info, warn, error)":      "ログレベル (debug, info, warn, error)",
		"Suppress all log output":                   "すべてのログ出力を抑制",
		"Interrupted, shutting down...":             "中断されました。シャットダウン中...",
		"%s requires exactly one input file":        "%s には入力ファイルを1つだけ指定してください",

		// Commands
		"Print stream properties":                          "ストリームのプロパティを表示",
		"Print JSON instead of YAML":                       "YAML の代わりに JSON で出力",
		"Identify the container of a file":                 "ファイルのコンテナ形式を判別",
		"%s cannot be decoded":                             "%s はデコードできません",
		"Export video frames as images":                    "動画フレームを画像として書き出し",
		"Export the audio track as WAV":                    "音声トラックを WAV として書き出し",
		"Render a contact sheet of evenly spaced frames":   "等間隔のフレームでコンタクトシートを作成",
		"Show version information":                         "バージョン情報を表示",
		"mpegctx version %s":                               "mpegctx バージョン %s",
		"Stream has no audio":                              "ストリームに音声がありません",

		// Flags
		"Output directory":                                    "出力ディレクトリ",
		"Output WAV file":                                     "出力 WAV ファイル",
		"Image format (png, jpg)":                             "画像形式 (png, jpg)",
		"JPEG quality (1-100)":                                "JPEG 品質 (1-100)",
		"Keep every Nth frame":                                "N フレームごとに保存",
		"Maximum number of frames, 0 for all":                 "最大フレーム数 (0 ですべて)",
		"Start time in seconds":                               "開始時刻 (秒)",
		"Seek exactly instead of to the previous intra frame": "直前のイントラフレームではなく正確な位置へシーク",
		"Audio stream index (0-3)":                            "音声ストリーム番号 (0-3)",
		"Number of thumbnails":                                "サムネイル数",
		"Grid columns":                                        "グリッドの列数",
		"Thumbnail width in pixels":                           "サムネイルの幅 (ピクセル)",
		"Gap between thumbnails in pixels":                    "サムネイル間の間隔 (ピクセル)",
		"Background color (hex)":                              "背景色 (16進数)",
		"Write a Markdown summary to this path":               "Markdown のサマリーをこのパスに書き出し",
	})
}
