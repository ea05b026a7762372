package attendance

// AdminSeed is the attendance list shown on the admin view.
func AdminSeed() []Record {
	return []Record{
		{ID: "att-001", Name: "Juan Dela Cruz", Status: Present, TimeIn: "07:58", TimeOut: "17:02", Date: "2026-03-02", Verification: Pending},
		{ID: "att-002", Name: "Angela Reyes", Status: Late, TimeIn: "08:24", TimeOut: "17:00", Date: "2026-03-02", Verification: Pending},
		{ID: "att-003", Name: "Mark Villanueva", Status: Absent, Date: "2026-03-02", Verification: Disapproved},
		{ID: "att-004", Name: "Kristine Mendoza", Status: Present, TimeIn: "07:45", TimeOut: "16:58", Date: "2026-03-02", Verification: Approved},
	}
}

// SupervisorSeed is the attendance list shown on the supervisor view. It is
// independent of AdminSeed.
func SupervisorSeed() []Record {
	return []Record{
		{ID: "att-101", Name: "Juan Dela Cruz", Status: Present, TimeIn: "08:00", TimeOut: "17:00", Date: "2026-03-03", Verification: Pending},
		{ID: "att-102", Name: "Angela Reyes", Status: Present, TimeIn: "07:55", TimeOut: "17:05", Date: "2026-03-03", Verification: Pending},
		{ID: "att-103", Name: "Kristine Mendoza", Status: Late, TimeIn: "08:40", TimeOut: "17:10", Date: "2026-03-03", Verification: Pending},
	}
}
