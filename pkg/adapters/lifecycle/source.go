package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/keyloom/pkg/core"
)

// DocumentEvent is a change of a loaded document's origin.
type DocumentEvent struct {
	core.Event
	// Document is the name the origin is loaded under.
	Document string
}

func (e DocumentEvent) String() string {
	return string(e.Type) + " " + e.Document
}

type documentSource struct {
	events <-chan core.Event
	names  map[string]string
	out    chan lifecycle.Event
}

// NewSource exposes changes of the given documents as a lifecycle.Source
// of DocumentEvent. Events for origins outside docs are dropped. The
// origin to name mapping is fixed when the source is created.
func NewSource(events <-chan core.Event, docs []*core.Document) lifecycle.Source {
	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		names[doc.Origin] = doc.Name
	}
	return &documentSource{
		events: events,
		names:  names,
		out:    make(chan lifecycle.Event),
	}
}

func (s *documentSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until the input closes or ctx is done, then closes Events.
func (s *documentSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				name, known := s.names[e.Origin]
				if !known {
					continue
				}
				select {
				case s.out <- DocumentEvent{Event: e, Document: name}:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
