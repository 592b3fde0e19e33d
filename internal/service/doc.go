// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the user
// store (defined in internal/store) to fulfill application features.
//
// UserService is where the profile rules live: email uniqueness and the
// minimum age are enforced at creation, updates require an existing user,
// and range searches require an ordered range. Rule violations are returned
// as *UserError values carrying one of the sentinel kinds below, so the API
// layer can translate them with errors.Is.
//
// The service layer depends on domain entities and the store interface,
// never on a specific storage implementation.
package service
