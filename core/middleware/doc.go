// Package middleware groups the fiber middleware used by the serve command.
//
//   - rayid: assigns every request an id, echoed in X-Ray-ID and attached to logs.
//   - auth: API key check on X-API-Key (or ?api_key=), disabled when no key is configured.
//
// rayid must be registered first so that auth failures are traceable.
package middleware
