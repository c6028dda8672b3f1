// Package http contains a widget updated over HTTP and websocket.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/denysvitali/yagobar/widgets/blank"
	"github.com/denysvitali/yagobar/ygb"

	"golang.org/x/net/websocket"
)

// WidgetParams are widget parameters.
type WidgetParams struct {
	Network string
	Listen  string
	Path    string
	// Actions are registered as commands broadcasting {"action": name} to websocket clients.
	Actions []string
}

// ActionMessage is sent to websocket clients when an action runs.
type ActionMessage struct {
	Action string `json:"action"`
}

// Widget implements the http server widget.
type Widget struct {
	blank.Widget
	params WidgetParams
	logger ygb.Logger

	instance *httpInstance
	owner    bool

	mu     sync.Mutex
	ctx    context.Context
	notify chan<- struct{}

	clients map[*websocket.Conn]chan interface{}
	cm      sync.RWMutex
}

var (
	_ ygb.Widget    = &Widget{}
	_ ygb.Commander = &Widget{}
	_ http.Handler  = &Widget{}
)

type httpInstance struct {
	server *http.Server
	mux    *http.ServeMux
	paths  map[string]struct{}
}

var (
	instances   = make(map[string]*httpInstance, 1)
	instancesMu sync.Mutex
)

func init() {
	if err := ygb.RegisterWidget(ygb.WidgetSpec{
		Name:    "http",
		NewFunc: NewWidget,
		DefaultParams: WidgetParams{
			Network: "tcp",
		},
	}); err != nil {
		panic(err)
	}
}

// NewWidget returns a new http widget.
// Widgets with the same listen address share one server.
func NewWidget(params interface{}, wlogger ygb.Logger) (ygb.Widget, error) {
	w := &Widget{
		params:  params.(WidgetParams),
		logger:  wlogger,
		clients: make(map[*websocket.Conn]chan interface{}),
	}

	if len(w.params.Listen) == 0 {
		return nil, errors.New("missing 'listen'")
	}

	if len(w.params.Path) == 0 {
		return nil, errors.New("missing 'path'")
	}

	if w.params.Network != "tcp" && w.params.Network != "unix" {
		return nil, errors.New("invalid 'network' (may be 'tcp' or 'unix')")
	}

	instancesMu.Lock()
	defer instancesMu.Unlock()

	key := w.params.Network + ":" + w.params.Listen

	instance, ok := instances[key]
	if ok {
		if _, ok := instance.paths[w.params.Path]; ok {
			return nil, fmt.Errorf("path '%s' already in use", w.params.Path)
		}
	} else {
		mux := http.NewServeMux()
		instance = &httpInstance{
			mux:   mux,
			paths: make(map[string]struct{}, 1),
			server: &http.Server{
				Handler: mux,
			},
		}

		instances[key] = instance
		w.owner = true
	}

	instance.mux.Handle(w.params.Path, w)
	instance.paths[w.params.Path] = struct{}{}
	w.instance = instance

	return w, nil
}

// Run serves the http server if this widget owns it, and waits for ctx otherwise.
func (w *Widget) Run(ctx context.Context, notify chan<- struct{}) error {
	w.mu.Lock()
	w.ctx = ctx
	w.notify = notify
	w.mu.Unlock()

	if !w.owner {
		<-ctx.Done()

		return ctx.Err()
	}

	l, err := net.Listen(w.params.Network, w.params.Listen)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		if err := w.instance.server.Shutdown(context.Background()); err != nil {
			w.logger.Errorf("http shutdown: %s", err)
		}
	}()

	err = w.instance.server.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return ctx.Err()
	}

	return err
}

// Commands returns one broadcasting command per configured action.
func (w *Widget) Commands() map[string]func() {
	if len(w.params.Actions) == 0 {
		return nil
	}

	cmds := make(map[string]func(), len(w.params.Actions))

	for _, action := range w.params.Actions {
		msg := ActionMessage{Action: action}
		cmds[action] = func() {
			w.broadcast(msg)
		}
	}

	return cmds
}

func (w *Widget) publish(blocks []ygb.I3BarBlock) {
	v := ygb.BlocksValue(blocks)

	w.mu.Lock()
	ctx, notify := w.ctx, w.notify
	w.mu.Unlock()

	if notify == nil {
		w.Set(v)

		return
	}

	if err := w.Update(ctx, notify, v); err != nil {
		w.logger.Debugf("update: %s", err)
	}
}

// ServeHTTP accepts POSTed i3bar blocks and websocket connections.
func (w *Widget) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	switch request.Method {
	case http.MethodGet:
		serv := websocket.Server{
			Handshake: func(cfg *websocket.Config, r *http.Request) error {
				return nil
			},
			Handler: w.wsHandler,
		}

		serv.ServeHTTP(response, request)
	case http.MethodPost:
		body, err := io.ReadAll(request.Body)
		if err != nil {
			w.logger.Errorf("%s", err)
			response.WriteHeader(http.StatusBadRequest)

			return
		}

		var blocks []ygb.I3BarBlock
		if err := json.Unmarshal(body, &blocks); err != nil {
			w.logger.Errorf("%s", err)
			response.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(response, "%s", err)

			return
		}

		w.publish(blocks)
		response.WriteHeader(http.StatusNoContent)
	default:
		response.WriteHeader(http.StatusMethodNotAllowed)

		_, err := response.Write([]byte("bad request method, allow GET for websocket and POST for HTTP update"))
		if err != nil {
			w.logger.Errorf("failed to write response: %s", err)
		}
	}
}

func (w *Widget) wsHandler(ws *websocket.Conn) {
	defer ws.Close()

	ch := make(chan interface{}, 8)

	w.cm.Lock()
	w.clients[ws] = ch
	w.cm.Unlock()

	go func() {
		for msg := range ch {
			if err := websocket.JSON.Send(ws, msg); err != nil {
				w.logger.Errorf("failed to send msg: %s", err)
			}
		}
	}()

	for {
		var blocks []ygb.I3BarBlock

		if err := websocket.JSON.Receive(ws, &blocks); err != nil {
			if !errors.Is(err, io.EOF) {
				w.logger.Errorf("invalid message: %s", err)
			}

			break
		}

		w.publish(blocks)
	}

	w.cm.Lock()
	delete(w.clients, ws)
	w.cm.Unlock()

	close(ch)
}

// broadcast never blocks; slow clients miss messages.
func (w *Widget) broadcast(msg interface{}) {
	w.cm.RLock()
	defer w.cm.RUnlock()

	for _, ch := range w.clients {
		select {
		case ch <- msg:
		default:
			w.logger.Debugf("client queue full, message dropped")
		}
	}
}
