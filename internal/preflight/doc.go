// Package preflight provides readiness checks for the filesystem paths and
// external tools ytpd depends on.
//
// These checks run in two contexts:
//   - The workflow calls RunAll after the request is collected. A failed
//     check stops the run before yt-dlp is spawned.
//   - The CLI "ytpd deps" command uses CheckSystemDeps and
//     CheckReleaseEndpoint to display tool health.
package preflight
