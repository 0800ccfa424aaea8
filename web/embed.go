// Package web 内嵌前端页面
package web

import _ "embed"

//go:embed index.html
var IndexHTML []byte
