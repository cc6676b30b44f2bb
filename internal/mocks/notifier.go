package mocks

import "github.com/stretchr/testify/mock"

type Notifier struct {
	mock.Mock
}

func (n *Notifier) Success(message string) {
	n.Called(message)
}

func (n *Notifier) Error(message string) {
	n.Called(message)
}
