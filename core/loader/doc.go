// Package loader registers HTTP features on the fiber app.
//
// Each feature implements Feature; the serve command registers them on a
// Manager and calls LoadAll once middleware is in place.
//
//	mgr := loader.NewManager()
//	mgr.Register(pipeline.NewFeature(svc, logg))
//	names, err := mgr.LoadAll(app)
package loader
