package icon

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// MirrorSupplier hands out icon mirror base URLs in round-robin order
type MirrorSupplier interface {
	Get() string
	Len() int
}

type mirrorSupplier struct {
	mirrors []string
	current int
	mutex   sync.Mutex
}

// NewMirrorSupplier probes every mirror in parallel and keeps the reachable
// ones in their configured order. When no mirror answers, all of them are
// kept so lookups can recover once a mirror comes back.
func NewMirrorSupplier(ctx context.Context, mirrors []string, probePath string) MirrorSupplier {
	if len(mirrors) == 0 {
		return &mirrorSupplier{mirrors: []string{}}
	}

	log.Infof("🔄 Probing %d icon mirrors in parallel...", len(mirrors))

	healthy := make([]bool, len(mirrors))
	var wg sync.WaitGroup

	for i, mirror := range mirrors {
		wg.Add(1)

		go func(index int, mirror string) {
			defer wg.Done()

			if isMirrorReachable(ctx, mirror, probePath) {
				healthy[index] = true
				log.Infof("✅ Icon mirror %s is reachable", mirror)
			} else {
				log.Warnf("❌ Icon mirror %s is not reachable, skipping", mirror)
			}
		}(i, strings.TrimRight(mirror, "/"))
	}

	wg.Wait()

	valid := make([]string, 0, len(mirrors))
	for i, mirror := range mirrors {
		if healthy[i] {
			valid = append(valid, strings.TrimRight(mirror, "/"))
		}
	}

	if len(valid) == 0 {
		log.Warnf("⚠️ No icon mirror answered the probe, keeping all %d configured mirrors", len(mirrors))
		for _, mirror := range mirrors {
			valid = append(valid, strings.TrimRight(mirror, "/"))
		}
	}

	log.Infof("✅ Mirror supplier initialized with %d mirrors", len(valid))

	return &mirrorSupplier{mirrors: valid}
}

// Get returns the next mirror base URL in round-robin fashion
func (m *mirrorSupplier) Get() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.mirrors) == 0 {
		return ""
	}

	mirror := m.mirrors[m.current]
	m.current = (m.current + 1) % len(m.mirrors)

	return mirror
}

func (m *mirrorSupplier) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.mirrors)
}

func isMirrorReachable(ctx context.Context, mirror, probePath string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(mirror + probePath)

	if err != nil {
		log.Debugf("Mirror probe failed for %s: %v", mirror, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Mirror probe failed for %s with status: %s", mirror, resp.Status())
		return false
	}

	return true
}
