package stay

// CandidateRooms returns the rooms able to host seg: the required room when one is set,
// otherwise every room carrying the required tags whose room type fits the guests.
func CandidateRooms(seg Segment, rooms []Room, roomTypes []RoomType) []Room {
	capacity := make(map[string]int, len(roomTypes))
	for _, rt := range roomTypes {
		capacity[rt.ID] = rt.MaxPeople
	}

	var res []Room

	for i := range rooms {
		room := rooms[i]

		if seg.RequiredRoomID != "" && room.ID != seg.RequiredRoomID {
			continue
		}

		if capacity[room.RoomTypeID] < seg.RequiredGuests {
			continue
		}

		if !room.HasTags(seg.RequiredTags) {
			continue
		}

		res = append(res, room)
	}

	return res
}
