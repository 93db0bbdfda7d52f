// Package mocks provides test doubles for the fetcher package.
package mocks

import (
	"context"
	"io"

	mock "github.com/stretchr/testify/mock"
)

// MockFetcher is a mock type for the Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

// MockFetcher_Expecter provides typed expectation helpers.
type MockFetcher_Expecter struct {
	mock *mock.Mock
}

// EXPECT returns the typed expecter for MockFetcher.
func (_m *MockFetcher) EXPECT() *MockFetcher_Expecter {
	return &MockFetcher_Expecter{mock: &_m.Mock}
}

// Download provides a mock function with given fields: ctx, url
func (_m *MockFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, url)

	if len(ret) == 0 {
		panic("no return value specified for Download")
	}

	var r0 io.ReadCloser
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (io.ReadCloser, error)); ok {
		return rf(ctx, url)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) io.ReadCloser); ok {
		r0 = rf(ctx, url)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(io.ReadCloser)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, url)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// MockFetcher_Download_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Download'.
type MockFetcher_Download_Call struct {
	*mock.Call
}

// Download is a helper method to define mock.On call
//   - ctx context.Context
//   - url string
func (_e *MockFetcher_Expecter) Download(ctx interface{}, url interface{}) *MockFetcher_Download_Call {
	return &MockFetcher_Download_Call{Call: _e.mock.On("Download", ctx, url)}
}

// Run sets a typed run function.
func (_c *MockFetcher_Download_Call) Run(run func(ctx context.Context, url string)) *MockFetcher_Download_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})
	return _c
}

// Return sets typed return values.
func (_c *MockFetcher_Download_Call) Return(_a0 io.ReadCloser, _a1 error) *MockFetcher_Download_Call {
	_c.Call.Return(_a0, _a1)
	return _c
}

// RunAndReturn sets a function computing the return values.
func (_c *MockFetcher_Download_Call) RunAndReturn(run func(context.Context, string) (io.ReadCloser, error)) *MockFetcher_Download_Call {
	_c.Call.Return(run)
	return _c
}

// Once limits the expectation to a single call.
func (_c *MockFetcher_Download_Call) Once() *MockFetcher_Download_Call {
	_c.Call.Once()
	return _c
}

// NewMockFetcher creates a new instance of MockFetcher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockFetcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFetcher {
	mock := &MockFetcher{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
