package mock

import (
	"sync"

	"github.com/minjae-dev/campcrawl"
)

var _ campcrawl.RecordSink = (*RecordSink)(nil)

// RecordSink is a mock implementation of campcrawl.RecordSink.
// With nil function fields it records what it receives, which covers most
// crawl tests without any setup.
type RecordSink struct {
	SendFn func(c *campcrawl.Campaign) error
	DoneFn func() error

	mu        sync.Mutex
	campaigns []*campcrawl.Campaign
	done      bool
}

func (s *RecordSink) Send(c *campcrawl.Campaign) error {
	if s.SendFn != nil {
		return s.SendFn(c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, c)
	return nil
}

func (s *RecordSink) Done() error {
	if s.DoneFn != nil {
		return s.DoneFn()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.done = true
	return nil
}

// Campaigns returns the records received so far.
func (s *RecordSink) Campaigns() []*campcrawl.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*campcrawl.Campaign(nil), s.campaigns...)
}

// DoneCalled returns true if the stream was completed.
func (s *RecordSink) DoneCalled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
