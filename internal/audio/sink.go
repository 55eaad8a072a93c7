package audio

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jfreymuth/pulse"
)

// Playback is one in-flight clip on the speaker. Done is closed when the
// clip finishes or is halted.
type Playback struct {
	source *clipSource
	stream *pulse.PlaybackStream
	done   chan struct{}
	halted atomic.Bool
	once   sync.Once
}

// Done returns a channel closed when playback ends for any reason.
func (p *Playback) Done() <-chan struct{} {
	return p.done
}

// Halted reports whether Stop ended this clip before its natural end.
func (p *Playback) Halted() bool {
	return p.halted.Load()
}

// Stop cuts the clip off immediately. Safe to call more than once and
// after the clip has already finished.
func (p *Playback) Stop() {
	p.once.Do(func() {
		p.halted.Store(true)
		p.source.halt()
		p.stream.Stop()
	})
}

// clipSource feeds one clip's samples to Pulse and goes silent when halted.
type clipSource struct {
	mu      sync.Mutex
	samples []int16
	cursor  int
	dead    bool
}

func (s *clipSource) halt() {
	s.mu.Lock()
	s.dead = true
	s.mu.Unlock()
}

func (s *clipSource) read(buf []int16) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dead || s.cursor >= len(s.samples) {
		return 0, pulse.EndOfData
	}
	n := copy(buf, s.samples[s.cursor:])
	s.cursor += n
	if s.cursor >= len(s.samples) {
		return n, pulse.EndOfData
	}
	return n, nil
}

// Sink plays PCM clips on the default Pulse output. One clip plays at a
// time; preemption policy lives in the playback engine, not here.
type Sink struct {
	mu     sync.Mutex
	client *pulse.Client
}

// NewSink connects to the Pulse server for speaker output.
func NewSink() (*Sink, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName(appName),
		pulse.ClientApplicationIconName("audio-speakers"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	return &Sink{client: client}, nil
}

// Close releases the Pulse connection.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		s.client.Close()
		s.client = nil
	}
	return nil
}

// Play starts a mono s16le clip and returns immediately with its handle.
func (s *Sink) Play(pcm []byte, sampleRate int) (*Playback, error) {
	s.mu.Lock()
	client := s.client
	s.mu.Unlock()
	if client == nil {
		return nil, fmt.Errorf("audio sink is closed")
	}

	source := &clipSource{samples: bytesToInt16(pcm)}
	stream, err := client.NewPlayback(
		pulse.Int16Reader(source.read),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackMediaName("saathi speech"),
	)
	if err != nil {
		return nil, fmt.Errorf("create pulse playback stream: %w", err)
	}

	playback := &Playback{
		source: source,
		stream: stream,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(playback.done)
		defer stream.Close()
		stream.Start()
		stream.Drain()
	}()

	return playback, nil
}

// bytesToInt16 reinterprets little-endian s16 PCM bytes as samples. A
// trailing odd byte is dropped.
func bytesToInt16(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return samples
}
