// Package coingecko provides a read-only client for the CoinGecko REST API.
//
// Endpoints used:
//   - GET /coins/list             full coin list (id, symbol, name)
//   - GET /coins/categories/list  full category list
//   - GET /coins/markets          market listings, paged upstream, priced in INR
//   - GET /simple/price           batch prices in INR and CAD
//   - GET /ping                   liveness
//
// Every call carries its own timeout and is bound to the caller's context.
// Failures are reported as errors.ErrUpstreamUnavailable; there are no retries.
package coingecko
