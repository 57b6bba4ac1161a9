//go:generate mockgen -source=../slot_storage.go     -destination=./mock_slot_storage.go     -package=mocks
//go:generate mockgen -source=../cart_view.go        -destination=./mock_cart_view.go        -package=mocks
//go:generate mockgen -source=../dialogs.go          -destination=./mock_dialogs.go          -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../message_consumer.go -destination=./mock_message_consumer.go -package=mocks

package mocks
