package platform

// Resolve detects the platform of the local host using HostInfo and a
// Detector configured with opts.
func Resolve(opts ...Option) (OSInfo, error) {
	d, err := NewDetector(opts...)
	if err != nil {
		return OSInfo{}, err
	}
	return d.Detect(HostInfo())
}
