package config

import "time"

// Overrides carries values given on the command line or through MDLINKCHECK_*
// variables. Zero values leave the file setting in place.
type Overrides struct {
	Include       []string
	Exclude       []string
	Backend       string
	Extractor     string
	Format        string
	AbsoluteLinks string
	HistoryPath   string
	NATSURL       string
	NATSSubject   string
	Debounce      time.Duration
	Interval      time.Duration
	MetricsAddr   string
	LogLevel      string
	LogFormat     string
}

// Apply copies every non-zero override into c.
func (c *Config) Apply(o Overrides) {
	if len(o.Include) > 0 {
		c.Include = o.Include
	}
	if len(o.Exclude) > 0 {
		c.Exclude = o.Exclude
	}
	setString((*string)(&c.Backend), o.Backend)
	setString((*string)(&c.Extractor), o.Extractor)
	setString((*string)(&c.Format), o.Format)
	setString((*string)(&c.AbsoluteLinks), o.AbsoluteLinks)
	setString(&c.History.Path, o.HistoryPath)
	setString(&c.NATS.URL, o.NATSURL)
	setString(&c.NATS.Subject, o.NATSSubject)
	setString(&c.Watch.MetricsAddr, o.MetricsAddr)
	setString((*string)(&c.Logging.Level), o.LogLevel)
	setString((*string)(&c.Logging.Format), o.LogFormat)
	if o.Debounce != 0 {
		c.Watch.Debounce = Duration(o.Debounce)
	}
	if o.Interval != 0 {
		c.Watch.Interval = Duration(o.Interval)
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
