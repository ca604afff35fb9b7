package probe

// Package probe implements best-effort network checks for stream servers:
// origin reachability (HEAD then GET) and HLS master playlist inspection.
