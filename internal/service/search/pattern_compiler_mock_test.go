package search

import (
	"regexp"
	"sync"
)

var _ patternCompiler = &patternCompilerMock{}

type patternCompilerMock struct {
	CompileFunc func(text string) (*regexp.Regexp, error)

	calls struct {
		Compile []struct {
			Text string
		}
	}
	lockCompile sync.RWMutex
}

func (mock *patternCompilerMock) Compile(text string) (*regexp.Regexp, error) {
	if mock.CompileFunc == nil {
		panic("patternCompilerMock.CompileFunc: method is nil but patternCompiler.Compile was just called")
	}
	callInfo := struct{ Text string }{Text: text}
	mock.lockCompile.Lock()
	mock.calls.Compile = append(mock.calls.Compile, callInfo)
	mock.lockCompile.Unlock()
	return mock.CompileFunc(text)
}

func (mock *patternCompilerMock) CompileCalls() []struct {
	Text string
} {
	mock.lockCompile.RLock()
	calls := mock.calls.Compile
	mock.lockCompile.RUnlock()
	return calls
}
