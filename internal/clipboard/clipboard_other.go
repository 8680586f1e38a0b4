//go:build !windows

package clipboard

import "sync"

// fakeClipboard is an in-process stand-in for the OS clipboard so the
// paste-to-job plumbing above is exercised without a real Windows
// clipboard to talk to. It holds exactly the same Content the Windows
// build would read back: a path list plus a copy/cut effect.
var fake struct {
	mu      sync.Mutex
	content *Content
}

func platformWrite(paths []string, effect Effect) error {
	if len(paths) == 0 {
		return errNoPaths
	}
	cp := append([]string(nil), paths...)
	fake.mu.Lock()
	fake.content = &Content{Paths: cp, Effect: effect}
	fake.mu.Unlock()
	return nil
}

func platformRead() (Content, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.content == nil {
		return Content{}, ErrEmpty
	}
	return *fake.content, nil
}
