package network

var (
	DialWithPreference = dialWithPreference
	DialWithIPStack    = dialWithIPStack
)

func NewNoopProvider() *noopProvider {
	return &noopProvider{}
}

func NewIPStackDialer(ipStack string) *ipStackDialer {
	return &ipStackDialer{ipStack: ipStack}
}
