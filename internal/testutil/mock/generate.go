// Package mock holds the gomock doubles of the use case interfaces used by
// the handler suites. Regenerate with go generate after changing an interface.
package mock

//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/commands/reservation.go -destination=internal/testutil/mock/commands/reservation_mock.go -package=commandsmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/commands/registry.go -destination=internal/testutil/mock/commands/registry_mock.go -package=commandsmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/commands/tariff.go -destination=internal/testutil/mock/commands/tariff_mock.go -package=commandsmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/commands/recovery.go -destination=internal/testutil/mock/commands/recovery_mock.go -package=commandsmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/commands/outbox.go -destination=internal/testutil/mock/commands/outbox_mock.go -package=commandsmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/queries/facility.go -destination=internal/testutil/mock/queries/facility_mock.go -package=queriesmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/queries/spot.go -destination=internal/testutil/mock/queries/spot_mock.go -package=queriesmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/queries/tariff.go -destination=internal/testutil/mock/queries/tariff_mock.go -package=queriesmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/queries/reservation.go -destination=internal/testutil/mock/queries/reservation_mock.go -package=queriesmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/queries/report.go -destination=internal/testutil/mock/queries/report_mock.go -package=queriesmock"
//go:generate sh -c "cd ../../.. && mockgen -source=internal/usecase/queries/reconciliation.go -destination=internal/testutil/mock/queries/reconciliation_mock.go -package=queriesmock"
