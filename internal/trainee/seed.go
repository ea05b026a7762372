package trainee

// Seed is the default trainee catalogue.
var Seed = []Trainee{
	{
		ID: "A23-00502", FullName: "Juan Dela Cruz", Email: "juan.delacruz@school.edu.ph",
		Phone: "09171234567", Address: "Brgy. San Isidro, Lipa City",
		Course: "BS Information Technology", Office: "IT Services Office", Supervisor: "Maria Santos",
		HoursRequired: 486, HoursRendered: 120, Status: StatusActive,
	},
	{
		ID: "A23-00517", FullName: "Angela Reyes", Email: "angela.reyes@school.edu.ph",
		Phone: "09182345678", Address: "Poblacion, Batangas City",
		Course: "BS Computer Science", Office: "Registrar's Office", Supervisor: "Maria Santos",
		HoursRequired: 486, HoursRendered: 242.5, Status: StatusActive,
	},
	{
		ID: "A23-00533", FullName: "Mark Villanueva", Email: "mark.villanueva@school.edu.ph",
		Phone: "09193456789", Address: "Brgy. Sabang, Lipa City",
		Course: "BS Information Technology", Office: "Human Resources", Supervisor: "Roberto Garcia",
		HoursRequired: 600, HoursRendered: 600, Status: StatusInactive,
	},
	{
		ID: "A23-00548", FullName: "Kristine Mendoza", Email: "kristine.mendoza@school.edu.ph",
		Phone: "09204567890", Address: "Tanauan City, Batangas",
		Course: "BS Accountancy", Office: "Accounting Office", Supervisor: "Roberto Garcia",
		HoursRequired: 300, HoursRendered: 87, Status: StatusActive,
	},
}
