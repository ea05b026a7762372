package report

// AdminSeed is the report list shown on the admin view. Initial statuses are
// mixed.
func AdminSeed() []Record {
	return []Record{
		{ID: "rep-001", Name: "Juan Dela Cruz", Course: "BS Information Technology", Date: "2026-03-02",
			TimeIn: "08:00", TimeOut: "17:00", Status: Pending,
			Description: "Configured network printers for the registrar and updated the asset inventory."},
		{ID: "rep-002", Name: "Angela Reyes", Course: "BS Computer Science", Date: "2026-03-02",
			TimeIn: "08:15", TimeOut: "17:00", Status: Approved,
			Description: "Encoded enrollment records and verified student ID photos."},
		{ID: "rep-003", Name: "Mark Villanueva", Course: "BS Information Technology", Date: "2026-02-27",
			TimeIn: "09:00", TimeOut: "16:00", Status: Declined,
			Description: "Assisted with payroll spreadsheet cleanup.", Attachment: "payroll-notes.pdf"},
		{ID: "rep-004", Name: "Kristine Mendoza", Course: "BS Accountancy", Date: "2026-03-01",
			TimeIn: "07:45", TimeOut: "16:45", Status: Pending,
			Description: "Reconciled petty cash vouchers for February."},
	}
}

// SupervisorSeed is the report list shown on the supervisor view. It is
// independent of AdminSeed.
func SupervisorSeed() []Record {
	return []Record{
		{ID: "rep-101", Name: "Juan Dela Cruz", Course: "BS Information Technology", Date: "2026-03-03",
			TimeIn: "08:00", TimeOut: "17:00", Status: Pending,
			Description: "Reimaged six laboratory workstations."},
		{ID: "rep-102", Name: "Angela Reyes", Course: "BS Computer Science", Date: "2026-03-03",
			TimeIn: "07:55", TimeOut: "17:05", Status: Pending,
			Description: "Drafted the user guide for the queueing kiosk."},
	}
}
