// Package redirect implements the redirect/authentication classifier
// (spec §4.7): a four-way decision over (requested URL, landing URL).
package redirect

import "github.com/use-agent/browserbridge/urlinfo"

// Flow distinguishes the two shapes an Auth verdict can take.
type Flow int

const (
	// CrossDomain: the landing auth page lives on a different host.
	CrossDomain Flow = iota
	// SameDomainPath: the landing auth page lives on the same host,
	// under a different (auth-looking) path.
	SameDomainPath
)

// Kind tags the variant carried by a Verdict.
type Kind int

const (
	KindNone Kind = iota
	KindRequestedAuth
	KindPermanent
	KindAuth
)

// Verdict is the tagged decision produced by Classify.
type Verdict struct {
	Kind Kind

	// Populated when Kind == KindPermanent.
	NewHost string

	// Populated when Kind == KindAuth.
	Flow          Flow
	OriginalBase  string
	CurrentBase   string
	CurrentURL    string
	OriginalHost  string
	CurrentHost   string
}

// Classify implements the decision table in spec §4.7.
//
//	req_auth = IsAuthLike(requestedURL)
//	land_auth = IsAuthLike(landingURL)
//	diff_host = landingHost != requestedHost
//	same_host_path_change = !diff_host && land_auth && !req_auth
//
// First matching row wins:
//
//	req_auth && !diff_host                -> RequestedAuth
//	!diff_host && !same_host_path_change   -> None
//	!land_auth (implies diff_host)         -> Permanent{new_host: landingHost}
//	otherwise                              -> Auth{flow, ...}
func Classify(requestedURL, requestedHost, landingURL, landingHost string) Verdict {
	reqAuth := urlinfo.IsAuthLike(requestedURL)
	landAuth := urlinfo.IsAuthLike(landingURL)
	diffHost := landingHost != requestedHost
	sameHostPathChange := !diffHost && landAuth && !reqAuth

	switch {
	case reqAuth && !diffHost:
		return Verdict{Kind: KindRequestedAuth}

	case !diffHost && !sameHostPathChange:
		return Verdict{Kind: KindNone}

	case !landAuth:
		return Verdict{Kind: KindPermanent, NewHost: landingHost}

	default:
		flow := CrossDomain
		if sameHostPathChange {
			flow = SameDomainPath
		}
		return Verdict{
			Kind:         KindAuth,
			Flow:         flow,
			OriginalBase: urlinfo.BaseDomain(requestedHost),
			CurrentBase:  urlinfo.BaseDomain(landingHost),
			CurrentURL:   landingURL,
			OriginalHost: requestedHost,
			CurrentHost:  landingHost,
		}
	}
}
