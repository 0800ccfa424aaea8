package slideshow

import (
	"fmt"
	"strings"
)

const (
	CanvasWidth  = 1280
	CanvasHeight = 720

	// 正文折行阈值（字符数），与字体宽度无关
	WrapWidth = 40

	lineAnchorY   = 340
	lineHalfSpace = 30
	lineHeight    = 60

	fontFamily = "Arial, sans-serif"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escape(s string) string {
	return xmlEscaper.Replace(s)
}

type gradientStop struct {
	offset string
	color  string
}

func writeOpen(b *strings.Builder) {
	fmt.Fprintf(b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`,
		CanvasWidth, CanvasHeight, CanvasWidth, CanvasHeight)
}

func writeGradientBackground(b *strings.Builder, id, x2, y2 string, stops ...gradientStop) {
	fmt.Fprintf(b, `<defs><linearGradient id="%s" x1="0%%" y1="0%%" x2="%s" y2="%s">`, id, x2, y2)
	for _, s := range stops {
		fmt.Fprintf(b, `<stop offset="%s" style="stop-color:%s;stop-opacity:1"/>`, s.offset, s.color)
	}
	b.WriteString(`</linearGradient></defs>`)
	fmt.Fprintf(b, `<rect width="%d" height="%d" fill="url(#%s)"/>`, CanvasWidth, CanvasHeight, id)
}

func writeCenteredText(b *strings.Builder, y, size int, bold bool, fill, text string) {
	weight := ""
	if bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(b, `<text x="%d" y="%d" font-family="%s" font-size="%d"%s fill="%s" text-anchor="middle">%s</text>`,
		CanvasWidth/2, y, fontFamily, size, weight, fill, escape(text))
}

// RenderTitle 片头，与标题内容无关
func RenderTitle() string {
	var b strings.Builder
	writeOpen(&b)
	writeGradientBackground(&b, "grad1", "100%", "100%",
		gradientStop{"0%", "#1e3a8a"},
		gradientStop{"50%", "#7c3aed"},
		gradientStop{"100%", "#ec4899"},
	)
	writeCenteredText(&b, 310, 80, true, "white", "आज की Headlines")
	writeCenteredText(&b, 410, 40, false, "white", "Today's Top News")
	b.WriteString(`</svg>`)
	return b.String()
}

// RenderEnd 片尾
func RenderEnd() string {
	var b strings.Builder
	writeOpen(&b)
	writeGradientBackground(&b, "grad2", "100%", "100%",
		gradientStop{"0%", "#1e3a8a"},
		gradientStop{"100%", "#ec4899"},
	)
	writeCenteredText(&b, 330, 60, true, "white", "धन्यवाद!")
	writeCenteredText(&b, 410, 40, false, "white", "Thank You for Watching")
	b.WriteString(`</svg>`)
	return b.String()
}

// LineOffsets 返回每一行文字的 y 坐标：以 lineAnchorY 为中心，从 anchor - n*30 开始，每行下移 60
func LineOffsets(lineCount int) []int {
	ys := make([]int, lineCount)
	start := lineAnchorY - lineCount*lineHalfSpace
	for i := range ys {
		ys[i] = start + i*lineHeight
	}
	return ys
}

// RenderContent 渲染单条标题，index 从 1 开始
func RenderContent(index int, headline string) string {
	lines := WrapText(headline, WrapWidth)

	var b strings.Builder
	writeOpen(&b)
	writeGradientBackground(&b, "bgGrad", "0%", "100%",
		gradientStop{"0%", "#0f172a"},
		gradientStop{"100%", "#1e293b"},
	)
	b.WriteString(`<rect x="100" y="150" width="1080" height="420" rx="20" fill="rgba(255,255,255,0.1)"/>`)
	fmt.Fprintf(&b, `<text x="150" y="230" font-family="%s" font-size="50" font-weight="bold" fill="#60a5fa" text-anchor="start">%d</text>`,
		fontFamily, index)

	for i, y := range LineOffsets(len(lines)) {
		writeCenteredText(&b, y, 45, true, "white", lines[i])
	}
	b.WriteString(`</svg>`)
	return b.String()
}
