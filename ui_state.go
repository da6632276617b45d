package main

type mode int

const (
	modeView mode = iota
	modeDialog
)

type uiState struct {
	mode       mode
	noticeMsg  string
	noticeType string
	noticeSeq  int
	theme      themeName
	styles     styles
}
