package dialogue

import "kira/internal/models"

// Canned option sets injected when the model supplies none, so the user is
// never left without actionable buttons after an open-ended reply.

const (
	checkReservationsText = "방 예약 현황을 확인하고 싶어요"
	reserveRoomText       = "새로운 회의실을 예약하고 싶어요"
	listAllRoomsText      = "ID KAIST의 모든 방 목록을 보여주세요"
	mainMenuText          = "안녕 KIRA, 어떤 기능이 있나요?"
)

func mainMenuOption() models.Option {
	return models.Option{Label: "메인 메뉴", FullText: mainMenuText}
}

func greetingOptions() []models.Option {
	return []models.Option{
		{Label: "예약 확인", FullText: checkReservationsText},
		{Label: "회의실 예약", FullText: reserveRoomText},
		{Label: "전체 방 목록", FullText: listAllRoomsText},
		{Label: "도움말", FullText: "KIRA의 사용 방법을 알려주세요"},
	}
}

func helpOptions() []models.Option {
	return []models.Option{
		{Label: "예약 확인", FullText: checkReservationsText},
		{Label: "회의실 예약", FullText: reserveRoomText},
		{Label: "전체 방 목록", FullText: listAllRoomsText},
	}
}

func listRoomsOptions() []models.Option {
	return []models.Option{
		{Label: "예약 확인", FullText: checkReservationsText},
		{Label: "회의실 예약", FullText: reserveRoomText},
		mainMenuOption(),
	}
}

func reservationNavOptions() []models.Option {
	return []models.Option{
		{Label: "다른 방 확인", FullText: checkReservationsText},
		mainMenuOption(),
	}
}
