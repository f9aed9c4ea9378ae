package scanner

// Default returns the registered scanners in a fixed order.
func Default() []Scanner {
	return []Scanner{
		NewComputeScanner(),
		NewLoadBalancingScanner(),
		NewDatabaseScanner(),
	}
}
