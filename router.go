package cooloff

import (
	"context"
	"fmt"
	"regexp"

	"github.com/iov-one/cooloff/errors"
)

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	// Handle assigns given handler to handle processing of every message
	// with the given path.
	Handle(path string, h Handler)
}

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// dispatch messages to the right one.
type Router struct {
	routes map[string]Handler
}

var _ Registry = (*Router)(nil)
var _ Handler = (*Router)(nil)

// NewRouter returns a new router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]Handler),
	}
}

// Handle implements Registry. It panics on invalid or duplicated paths,
// both being a setup mistake.
func (r *Router) Handle(path string, h Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Deliver dispatches the message to the handler registered for its path.
func (r *Router) Deliver(ctx context.Context, info BlockInfo, msg Msg) (*DeliverResult, error) {
	path := msg.Path()
	h, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	return h.Deliver(ctx, info, msg)
}
