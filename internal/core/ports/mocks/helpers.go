package mocks

import (
	"github.com/stretchr/testify/mock"
)

// NewTestLogger returns a Logger mock that accepts every call.
func NewTestLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Logger {
	l := NewLogger(t)
	l.On("WithFields", mock.Anything).Maybe().Return(l)
	l.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	l.On("Infof", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	l.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	l.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	return l
}
