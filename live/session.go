// Package live serves listing pages over a websocket. Each connection owns
// one listing.Controller: gestures arrive as frames, debounced results and
// URL updates go back as frames, and closing the socket cancels whatever
// recompute is still pending.
package live

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"bestcdmx/listing"
	"bestcdmx/logging"
	"bestcdmx/metrics"
	"bestcdmx/models"
	"bestcdmx/pages"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"k8s.io/utils/clock"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBuffer     = 32
)

// Config configures live sessions.
type Config struct {
	DebounceWindow time.Duration
	// Clock drives the debounce timers, the wall clock if nil.
	Clock clock.WithDelayedExecution
	// Metrics may be nil.
	Metrics *metrics.Metrics
	// AllowedOrigins may contain "*". Same-host requests are always allowed.
	AllowedOrigins []string
}

// Server upgrades requests to live sessions.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader
}

func NewServer(cfg Config) *Server {
	s := &Server{cfg: cfg}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if slices.Contains(s.cfg.AllowedOrigins, "*") || slices.Contains(s.cfg.AllowedOrigins, origin) {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// Serve upgrades the request and runs the session for page until the
// client goes away. The request query is the initial filter state.
func (s *Server) Serve(w http.ResponseWriter, r *http.Request, page pages.Page) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sess := &session{
		conn:    conn,
		page:    page,
		metrics: s.cfg.Metrics,
		send:    make(chan Outbound, sendBuffer),
		done:    make(chan struct{}),
		log:     logging.Ctx(r.Context()).With().Str("component", "live").Str("path", r.URL.Path).Logger(),
	}
	opts := listing.Options[models.Restaurant]{
		Window:    s.cfg.DebounceWindow,
		Clock:     s.cfg.Clock,
		Navigator: listing.NavigatorFunc(sess.navigate),
		OnChange:  sess.changed,
	}
	if s.cfg.Metrics != nil {
		opts.OnRecompute = s.cfg.Metrics.ObserveRecompute
		s.cfg.Metrics.LiveSessions.Inc()
		defer s.cfg.Metrics.LiveSessions.Dec()
	}
	sess.ctrl = listing.NewController(page.Input(), r.URL.Query(), opts)

	sess.log.Debug().Msg("live session opened")
	sess.changed(sess.ctrl.Snapshot())

	go sess.writePump()
	sess.readPump()
	sess.log.Debug().Msg("live session closed")
}

type session struct {
	conn    *websocket.Conn
	page    pages.Page
	ctrl    *listing.Controller[models.Restaurant]
	metrics *metrics.Metrics
	log     zerolog.Logger

	send      chan Outbound
	done      chan struct{}
	closeOnce sync.Once

	// order serializes snapshot delivery; lastSeq is the newest sent.
	order   sync.Mutex
	lastSeq uint64
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		s.ctrl.Close()
		close(s.done)
		_ = s.conn.Close()
	})
}

// enqueue blocks while the send buffer is full, until the session closes.
func (s *session) enqueue(f Outbound) {
	select {
	case s.send <- f:
	case <-s.done:
	}
}

// changed runs on the reader and on the debounce timer. A snapshot older
// than one already queued is dropped so a busy frame never follows the
// result of a later commit.
func (s *session) changed(snap listing.Snapshot[models.Restaurant]) {
	s.order.Lock()
	defer s.order.Unlock()
	if snap.Seq < s.lastSeq {
		return
	}
	s.lastSeq = snap.Seq
	s.enqueue(snapshotFrame(pages.NewPayload(s.page, snap)))
}

func (s *session) navigate(query string) {
	s.enqueue(navigateFrame(query))
}

func (s *session) readPump() {
	defer s.close()

	s.conn.SetReadLimit(maxMessageSize)
	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.log.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		var in Inbound
		if err := json.Unmarshal(data, &in); err != nil {
			s.enqueue(rejectedFrame("malformed frame"))
			continue
		}
		s.handle(in)
	}
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case f := <-s.send:
			data, err := json.Marshal(f)
			if err != nil {
				s.log.Error().Err(err).Str("type", f.Type).Msg("failed to encode frame")
				continue
			}
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				s.log.Debug().Err(err).Msg("write failed")
				return
			}
		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
