package basketevents

const (
	TopicName         = "basket"
	basketCreatedName = TopicName + ".created"
)

type BasketCreated struct {
	BasketUID string
}

func (e BasketCreated) GetEventTypeName() string {
	return basketCreatedName
}

func (e BasketCreated) GetAggregateName() string {
	return e.BasketUID
}
