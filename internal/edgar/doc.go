// Package edgar implements the SEC EDGAR client used by the acquisition
// stage.
//
// Two endpoints are consumed: the ticker-to-CIK mapping file and the XBRL
// CompanyFacts API. The companyfacts endpoint is called per firm, which gives
// exact fiscal period end dates and avoids the calendar-year misalignment the
// Frames API introduces for firms whose fiscal year does not end in December.
//
// All requests share a single token-bucket limiter honoring the SEC
// fair-access cap of 10 requests per second, and carry the descriptive
// User-Agent the SEC requires.
package edgar
