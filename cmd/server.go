package cmd

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/pixelroll/convert"
	"github.com/jsphweid/pixelroll/db"
	"github.com/jsphweid/pixelroll/midi"
	"github.com/jsphweid/pixelroll/model"
	"github.com/sirupsen/logrus"
)

// session is one uploaded image that gets reconverted whenever its options
// change.
type session struct {
	id     string
	source string
	img    *image.NRGBA
	runner *convert.Runner
	// coalesces bursts of option updates into one restart
	restart func(f func())

	mu   sync.Mutex
	opts model.Options
	// header of the run the runner currently holds
	header midi.Header
	err    error
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	records  *db.Store
	wait     time.Duration
}

func newSessionStore(records *db.Store, wait time.Duration) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		records:  records,
		wait:     wait,
	}
}

func (s *sessionStore) create(source string, img *image.NRGBA, opts model.Options) (*session, error) {
	sess := &session{
		id:      uuid.New().String(),
		source:  source,
		img:     img,
		runner:  convert.NewRunner(),
		restart: debounce.New(s.wait),
		opts:    opts,
	}
	if err := s.start(sess); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	logrus.WithFields(logrus.Fields{"session": sess.id, "source": source}).Info("created session")
	return sess, nil
}

func (s *sessionStore) get(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *sessionStore) start(sess *session) error {
	sess.mu.Lock()
	opts := sess.opts
	sess.mu.Unlock()

	var p *convert.Process
	cfg, err := convert.ConfigFromOptions(opts, sess.img)
	if err == nil {
		// previews are drawn on request
		cfg.PreviewScale = 0
		p, err = convert.New(cfg)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.err = err
	if err != nil {
		return err
	}
	// published reads both under mu, so a result never pairs with another run's header
	sess.header = midi.HeaderFromOptions(opts)
	sess.runner.Start(context.Background(), p, sess.img, func(res *convert.Result) {
		s.record(sess, res)
	})
	return nil
}

// update stores new options and schedules a restart. The running conversion
// keeps going until the restart actually happens.
func (s *sessionStore) update(sess *session, opts model.Options) {
	sess.mu.Lock()
	sess.opts = opts
	sess.mu.Unlock()
	sess.restart(func() {
		if err := s.start(sess); err != nil {
			logrus.WithError(err).WithField("session", sess.id).Warn("could not restart conversion")
		}
	})
}

func (s *sessionStore) record(sess *session, res *convert.Result) {
	if s.records == nil {
		return
	}
	err := s.records.PutConversion(db.ConversionRecord{
		ID:        sess.id,
		Source:    sess.source,
		Width:     res.Width,
		Height:    res.Height,
		Tracks:    res.Palette.Len(),
		NoteCount: res.NoteCount,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logrus.WithError(err).WithField("session", sess.id).Warn("could not record conversion")
	}
}

func (sess *session) status() model.SessionStatus {
	st := model.SessionStatus{Id: sess.id, Progress: sess.runner.Progress()}
	if res := sess.runner.Result(); res != nil {
		st.Ready = true
		st.NoteCount = res.NoteCount
		st.Width = res.Width
		st.Height = res.Height
	}
	sess.mu.Lock()
	err := sess.err
	sess.mu.Unlock()
	if err == nil {
		err = sess.runner.Err()
	}
	if err != nil {
		st.Error = err.Error()
	}
	return st
}

// published returns the finished result together with the header it was
// converted for.
func (sess *session) published() (*convert.Result, midi.Header) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.runner.Result(), sess.header
}
