package signal

import "time"

// MarketZone returns Asia/Kolkata, falling back to a fixed IST offset if
// tzdata is missing.
func MarketZone() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}
