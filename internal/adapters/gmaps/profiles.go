package gmaps

import (
	"math/rand"
	"net/http"
	"sync"
)

// Profile is one browser impersonation: the user agent plus the client-hint
// headers a real browser of that version would send.
type Profile struct {
	Name      string
	UserAgent string
	Headers   map[string]string
}

func (p Profile) apply(h http.Header) {
	h.Set("user-agent", p.UserAgent)
	for k, v := range p.Headers {
		h.Set(k, v)
	}
}

func chromeProfile(name, version string) Profile {
	return Profile{
		Name:      name,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/" + version + ".0.0.0 Safari/537.36",
		Headers: map[string]string{
			"sec-ch-ua":          `"Chromium";v="` + version + `", "Google Chrome";v="` + version + `", "Not.A/Brand";v="99"`,
			"sec-ch-ua-mobile":   "?0",
			"sec-ch-ua-platform": `"Windows"`,
		},
	}
}

// DefaultProfiles is the rotation set: recent Chrome desktop versions are
// weighted by repetition, plus Android Chrome, Edge and Safari fingerprints.
var DefaultProfiles = []Profile{
	chromeProfile("chrome136", "136"),
	chromeProfile("chrome136", "136"),
	chromeProfile("chrome131", "131"),
	chromeProfile("chrome124", "124"),
	chromeProfile("chrome120", "120"),
	chromeProfile("chrome116", "116"),
	{
		Name:      "chrome131_android",
		UserAgent: "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Mobile Safari/537.36",
		Headers: map[string]string{
			"sec-ch-ua":          `"Chromium";v="131", "Google Chrome";v="131", "Not.A/Brand";v="99"`,
			"sec-ch-ua-mobile":   "?1",
			"sec-ch-ua-platform": `"Android"`,
		},
	},
	{
		Name:      "edge101",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/101.0.4951.64 Safari/537.36 Edg/101.0.1210.47",
		Headers: map[string]string{
			"sec-ch-ua":          `" Not A;Brand";v="99", "Chromium";v="101", "Microsoft Edge";v="101"`,
			"sec-ch-ua-mobile":   "?0",
			"sec-ch-ua-platform": `"Windows"`,
		},
	},
	{
		Name:      "safari15_5",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.5 Safari/605.1.15",
	},
}

// Rotator hands out impersonation profiles, either round-robin or randomly.
// It is owned by the client and safe for concurrent use.
type Rotator struct {
	mu       sync.Mutex
	profiles []Profile
	idx      int
	random   bool
	rnd      *rand.Rand
}

// NewRotator builds a rotator over the given profiles (DefaultProfiles when
// nil). With random=true each pick is uniform; otherwise picks cycle in order.
func NewRotator(profiles []Profile, random bool, seed int64) *Rotator {
	if len(profiles) == 0 {
		profiles = DefaultProfiles
	}
	return &Rotator{
		profiles: profiles,
		random:   random,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

// Next returns the profile for the next request.
func (r *Rotator) Next() Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.random {
		return r.profiles[r.rnd.Intn(len(r.profiles))]
	}
	p := r.profiles[r.idx]
	r.idx = (r.idx + 1) % len(r.profiles)
	return p
}

// Reset rewinds the sequential rotation to the first profile.
func (r *Rotator) Reset() {
	r.mu.Lock()
	r.idx = 0
	r.mu.Unlock()
}
