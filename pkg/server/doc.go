// Package server exposes the conversion pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz      liveness probe with build information
//	POST /v1/convert   convert a workspace document in the request body
//
// The convert endpoint accepts these query parameters:
//
//   - format: output format (dgml, json, dot, svg, png, pdf; default dgml)
//   - input: body format (json or yaml); inferred from Content-Type otherwise
//   - views: comma-separated view kinds (context, container, component)
//   - default_background: background applied to every resolved style
//   - max_label_length: link label limit
//   - detailed: show category chains in rendered images
//
// Every response carries an X-Request-ID header. Errors are returned as JSON
// objects with "code" and "message" fields; INVALID_* codes map to 400 and
// NOT_FOUND codes to 404.
package server
